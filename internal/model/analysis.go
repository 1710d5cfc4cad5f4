package model

import (
	"context"
	"encoding/json"
)

// Analyzer turns an uploaded document into a structured analysis result.
// It may be slow and may run out of process.
type Analyzer interface {
	Analyze(ctx context.Context, input AnalysisInput) (json.RawMessage, error)
}

// AnalysisInput is what the analyzer gets to look at.
type AnalysisInput struct {
	FileName string
	FileType string
	Data     []byte
	// StagedKey locates the staged copy of Data in object storage.
	StagedKey string
	Text      string
}
