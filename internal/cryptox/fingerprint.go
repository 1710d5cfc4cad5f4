package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

var errEmptyInput = errors.New("input is empty")

// HashBytes returns the hex SHA-256 of data. It is the file identity used for dedup.
func HashBytes(data []byte) (string, error) {
	if len(data) == 0 {
		return "", &FingerprintError{Op: "hash bytes", Err: errEmptyInput}
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// NormalizeText collapses whitespace runs to a single space, trims and lowercases.
func NormalizeText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// HashNormalizedText fingerprints text so that copies differing only in
// incidental formatting hash identically.
func HashNormalizedText(text string) string {
	sum := sha256.Sum256([]byte(NormalizeText(text)))
	return hex.EncodeToString(sum[:])
}
