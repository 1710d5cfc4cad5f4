package model

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
)

// ContractStore defines persistence operations for analyzed contracts.
type ContractStore interface {
	FindActive(ctx context.Context, fileHash string, uploaderID uuid.UUID) (ContractRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (ContractRecord, error)
	Create(ctx context.Context, record ContractRecord) (ContractRecord, error)
	RecordAccess(ctx context.Context, id uuid.UUID) (ContractRecord, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to RecordStatus) error
	ListByUploader(ctx context.Context, filter ListFilter) (RecordPage, error)
	Stats(ctx context.Context, uploaderID uuid.UUID) (UsageStats, error)
}

// RecordStatus is the soft-delete discriminator of a contract record.
type RecordStatus string

const (
	// StatusActive records take part in dedup lookups and normal reads.
	StatusActive RecordStatus = "active"
	// StatusArchived records are kept but never reused.
	StatusArchived RecordStatus = "archived"
	// StatusDeleted records are soft-deleted.
	StatusDeleted RecordStatus = "deleted"
)

// Valid reports whether s is a known status.
func (s RecordStatus) Valid() bool {
	switch s {
	case StatusActive, StatusArchived, StatusDeleted:
		return true
	}
	return false
}

// ContractRecord is the persisted unit: a fingerprinted upload with its
// sealed content and sealed analysis. Key material is stored next to the
// ciphertext, so read access to the store is decrypt access.
type ContractRecord struct {
	ID         uuid.UUID
	FileHash   string
	TextHash   string
	UploadedBy uuid.UUID

	FileName string
	FileSize int64
	FileType string

	EncryptedContent  string
	ContentTag        string
	EncryptedAnalysis string
	AnalysisTag       string
	EncryptionKey     string
	IV                string

	AccessCount     int64
	LastAccessed    time.Time
	AnalysisDate    time.Time
	AnalysisVersion string
	Status          RecordStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Metadata strips sealed payloads and key material from the record.
func (r ContractRecord) Metadata() RecordMetadata {
	return RecordMetadata{
		ID:              r.ID,
		FileHash:        r.FileHash,
		TextHash:        r.TextHash,
		FileName:        r.FileName,
		FileSize:        r.FileSize,
		FileType:        r.FileType,
		AccessCount:     r.AccessCount,
		LastAccessed:    r.LastAccessed,
		AnalysisDate:    r.AnalysisDate,
		AnalysisVersion: r.AnalysisVersion,
		Status:          r.Status,
	}
}

// ContentPayload is the plaintext sealed into EncryptedContent.
type ContentPayload struct {
	FileName      string    `json:"fileName"`
	FileSize      int64     `json:"fileSize"`
	FileType      string    `json:"fileType"`
	UploadDate    time.Time `json:"uploadDate"`
	ExtractedText string    `json:"extractedText"`
}

// RecordMetadata is the listing projection of a record.
type RecordMetadata struct {
	ID              uuid.UUID
	FileHash        string
	TextHash        string
	FileName        string
	FileSize        int64
	FileType        string
	AccessCount     int64
	LastAccessed    time.Time
	AnalysisDate    time.Time
	AnalysisVersion string
	Status          RecordStatus
}

// ListFilter selects one page of an uploader's records.
type ListFilter struct {
	UploaderID uuid.UUID
	Status     RecordStatus
	Page       int
	PageSize   int
}

// Offset returns the number of rows to skip for the filter's page. It
// saturates at math.MaxInt instead of overflowing.
func (f ListFilter) Offset() int {
	if f.Page < 1 || f.PageSize < 1 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.PageSize {
		return math.MaxInt
	}
	return (f.Page - 1) * f.PageSize
}

// RecordPage is one page of record metadata.
type RecordPage struct {
	Items      []RecordMetadata
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// UsageStats aggregates an uploader's active records.
type UsageStats struct {
	TotalRecords       int64
	TotalAccessCount   int64
	AverageAccessCount float64
	ByFileType         map[string]int64
}
