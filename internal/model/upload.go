package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// UploadParams describes one contract upload.
type UploadParams struct {
	UploaderID uuid.UUID
	FileName   string
	// FileType is the client-declared MIME type; it may be empty.
	FileType string
	Data     []byte
}

// AnalyzeResult is the outcome of analyze-or-reuse. IsDuplicate is true when
// the analysis came from an existing active record.
type AnalyzeResult struct {
	IsDuplicate bool
	Record      RecordMetadata
	Content     ContentPayload
	Analysis    json.RawMessage
}

// RecordView is a decrypted record.
type RecordView struct {
	Record   RecordMetadata
	Content  ContentPayload
	Analysis json.RawMessage
}
