package cryptox

import (
	"crypto/sha512"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2Iterations is the work factor for password-derived keys.
	PBKDF2Iterations = 100_000
	// MinSaltSize is the shortest salt DeriveKeyFromPassword accepts.
	MinSaltSize = 16
)

// DeriveKeyFromPassword derives a 256-bit key from a human secret with
// PBKDF2-HMAC-SHA512. Contract records never use it; their keys are random.
func DeriveKeyFromPassword(password string, salt []byte) (string, error) {
	if password == "" {
		return "", &EncryptionError{Op: "derive key", Err: errors.New("password is empty")}
	}
	if len(salt) < MinSaltSize {
		return "", &EncryptionError{Op: "derive key", Err: fmt.Errorf("salt is %d bytes, want at least %d", len(salt), MinSaltSize)}
	}
	key := pbkdf2.Key([]byte(password), salt, PBKDF2Iterations, KeySize, sha512.New)
	return base64.StdEncoding.EncodeToString(key), nil
}
