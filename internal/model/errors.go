package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no matching record exists.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned by Create when an active record already
	// exists for the same file hash and uploader.
	ErrDuplicateKey = errors.New("active record already exists for file hash and uploader")
	// ErrOwnershipViolation is returned when a caller touches another uploader's record.
	ErrOwnershipViolation = errors.New("record belongs to another uploader")
	// ErrInvalidArgument is returned for malformed requests.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStatusConflict is returned when a status transition finds the record in an unexpected status.
	ErrStatusConflict = errors.New("record status changed concurrently")
)

// AnalysisError reports that the external analyzer failed or timed out.
// The upload may be retried; no record was created.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}
