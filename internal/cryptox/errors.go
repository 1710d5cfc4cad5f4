package cryptox

import (
	"errors"
	"fmt"
)

var (
	// ErrFingerprint is matched by every *FingerprintError.
	ErrFingerprint = errors.New("fingerprint failed")
	// ErrEncryption is matched by every *EncryptionError.
	ErrEncryption = errors.New("encryption failed")
	// ErrDecryption is matched by every *DecryptionError.
	ErrDecryption = errors.New("decryption failed")
)

// FingerprintError reports unreadable or empty input to a hash function.
type FingerprintError struct {
	Op  string
	Err error
}

func (e *FingerprintError) Error() string { return fmt.Sprintf("fingerprint %s: %v", e.Op, e.Err) }
func (e *FingerprintError) Unwrap() error { return e.Err }
func (e *FingerprintError) Is(target error) bool {
	return target == ErrFingerprint
}

// EncryptionError reports a failure to produce key material or a sealed payload.
type EncryptionError struct {
	Op  string
	Err error
}

func (e *EncryptionError) Error() string { return fmt.Sprintf("encrypt %s: %v", e.Op, e.Err) }
func (e *EncryptionError) Unwrap() error { return e.Err }
func (e *EncryptionError) Is(target error) bool {
	return target == ErrEncryption
}

// DecryptionError reports a sealed payload that could not be opened: tag
// mismatch, corrupted ciphertext, wrong key or IV, malformed encoding.
// No partial plaintext is ever returned alongside it.
type DecryptionError struct {
	Op  string
	Err error
}

func (e *DecryptionError) Error() string { return fmt.Sprintf("decrypt %s: %v", e.Op, e.Err) }
func (e *DecryptionError) Unwrap() error { return e.Err }
func (e *DecryptionError) Is(target error) bool {
	return target == ErrDecryption
}
