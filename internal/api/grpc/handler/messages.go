package handler

import (
	"encoding/json"
	"time"

	"github.com/jurisai/contractvault/internal/model"
)

// AnalyzeContractRequest carries one uploaded file. Content travels base64
// encoded in the JSON body.
type AnalyzeContractRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType,omitempty"`
	Content  []byte `json:"content"`
}

type AnalyzeContractResponse struct {
	IsDuplicate bool            `json:"isDuplicate"`
	Record      Record          `json:"record"`
	Content     Content         `json:"content"`
	Analysis    json.RawMessage `json:"analysis"`
}

type GetContractRequest struct {
	RecordID string `json:"recordId"`
}

type GetContractResponse struct {
	Record   Record          `json:"record"`
	Content  Content         `json:"content"`
	Analysis json.RawMessage `json:"analysis"`
}

type ListContractsRequest struct {
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"pageSize,omitempty"`
	Status   string `json:"status,omitempty"`
}

type ListContractsResponse struct {
	Items      []Record `json:"items"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	TotalPages int      `json:"totalPages"`
}

type GetStatsRequest struct{}

type GetStatsResponse struct {
	TotalRecords       int64            `json:"totalRecords"`
	TotalAccessCount   int64            `json:"totalAccessCount"`
	AverageAccessCount float64          `json:"averageAccessCount"`
	ByFileType         map[string]int64 `json:"byFileType"`
}

type ArchiveContractRequest struct {
	RecordID string `json:"recordId"`
}

type DeleteContractRequest struct {
	RecordID string `json:"recordId"`
}

type Empty struct{}

// Record is the metadata view of a stored contract.
type Record struct {
	ID              string    `json:"id"`
	FileHash        string    `json:"fileHash"`
	FileName        string    `json:"fileName"`
	FileSize        int64     `json:"fileSize"`
	FileType        string    `json:"fileType"`
	AccessCount     int64     `json:"accessCount"`
	LastAccessed    time.Time `json:"lastAccessed"`
	AnalysisDate    time.Time `json:"analysisDate"`
	AnalysisVersion string    `json:"analysisVersion"`
	Status          string    `json:"status"`
}

// Content is the decrypted upload metadata and extracted text.
type Content struct {
	FileName      string    `json:"fileName"`
	FileSize      int64     `json:"fileSize"`
	FileType      string    `json:"fileType"`
	UploadDate    time.Time `json:"uploadDate"`
	ExtractedText string    `json:"extractedText"`
}

func toRecord(m model.RecordMetadata) Record {
	return Record{
		ID:              m.ID.String(),
		FileHash:        m.FileHash,
		FileName:        m.FileName,
		FileSize:        m.FileSize,
		FileType:        m.FileType,
		AccessCount:     m.AccessCount,
		LastAccessed:    m.LastAccessed,
		AnalysisDate:    m.AnalysisDate,
		AnalysisVersion: m.AnalysisVersion,
		Status:          string(m.Status),
	}
}

func toContent(c model.ContentPayload) Content {
	return Content{
		FileName:      c.FileName,
		FileSize:      c.FileSize,
		FileType:      c.FileType,
		UploadDate:    c.UploadDate,
		ExtractedText: c.ExtractedText,
	}
}
