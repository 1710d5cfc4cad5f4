package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/jurisai/contractvault/internal/cryptox"
	"github.com/jurisai/contractvault/internal/extract"
	"github.com/jurisai/contractvault/internal/logger"
	"github.com/jurisai/contractvault/internal/model"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	cleanupTimeout = 10 * time.Second
)

// Contracts fingerprints uploads, reuses the sealed analysis of a matching
// active record, and otherwise runs the analyzer and stores a new record.
type Contracts struct {
	store           model.ContractStore
	storage         model.Storage
	analyzer        model.Analyzer
	analysisVersion string
	logger          *logger.Logger
	now             func() time.Time
}

// NewContracts builds the service. storage may be nil, in which case uploads
// are analyzed from memory without staging.
func NewContracts(
	store model.ContractStore,
	storage model.Storage,
	analyzer model.Analyzer,
	analysisVersion string,
	logger *logger.Logger,
) *Contracts {
	return &Contracts{
		store:           store,
		storage:         storage,
		analyzer:        analyzer,
		analysisVersion: analysisVersion,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// AnalyzeOrReuse returns the analysis of params.Data for its uploader,
// computing it only when no active record with the same fingerprint exists.
func (s *Contracts) AnalyzeOrReuse(ctx context.Context, params model.UploadParams) (model.AnalyzeResult, error) {
	if params.UploaderID == uuid.Nil {
		return model.AnalyzeResult{}, fmt.Errorf("%w: uploader id is required", model.ErrInvalidArgument)
	}

	fileHash, err := cryptox.HashBytes(params.Data)
	if err != nil {
		return model.AnalyzeResult{}, fmt.Errorf("failed to fingerprint upload: %w", err)
	}

	existing, err := s.store.FindActive(ctx, fileHash, params.UploaderID)
	switch {
	case err == nil:
		result, err := s.reuse(ctx, existing)
		if !errors.Is(err, model.ErrNotFound) {
			return result, err
		}
		// Archived between lookup and access; analyze afresh.
	case !errors.Is(err, model.ErrNotFound):
		return model.AnalyzeResult{}, fmt.Errorf("failed to look up record: %w", err)
	}

	return s.analyzeAndStore(ctx, fileHash, params)
}

func (s *Contracts) reuse(ctx context.Context, record model.ContractRecord) (model.AnalyzeResult, error) {
	view, err := s.openAndTrack(ctx, record)
	if err != nil {
		return model.AnalyzeResult{}, err
	}

	s.logger.Debug("reused contract analysis",
		"record_id", record.ID,
		"uploader_id", record.UploadedBy,
		"access_count", view.Record.AccessCount)

	return model.AnalyzeResult{
		IsDuplicate: true,
		Record:      view.Record,
		Content:     view.Content,
		Analysis:    view.Analysis,
	}, nil
}

func (s *Contracts) analyzeAndStore(ctx context.Context, fileHash string, params model.UploadParams) (model.AnalyzeResult, error) {
	fileType := extract.DetectType(params.Data, params.FileType)

	stagedKey, err := s.stage(ctx, params.UploaderID, params.Data)
	if err != nil {
		return model.AnalyzeResult{}, err
	}
	defer s.unstage(ctx, stagedKey)

	text, err := extract.Text(fileType, params.Data)
	if err != nil {
		s.logger.Debug("no text extracted from upload", "file_type", fileType, "error", err)
		text = ""
	}

	raw, err := s.analyzer.Analyze(ctx, model.AnalysisInput{
		FileName:  params.FileName,
		FileType:  fileType,
		Data:      params.Data,
		StagedKey: stagedKey,
		Text:      text,
	})
	if err != nil {
		s.logger.Warn("contract analysis failed", "uploader_id", params.UploaderID, "error", err)
		return model.AnalyzeResult{}, &model.AnalysisError{Err: err}
	}

	analysis, err := json.Marshal(raw)
	if err != nil {
		return model.AnalyzeResult{}, &model.AnalysisError{Err: fmt.Errorf("analyzer returned invalid JSON: %w", err)}
	}

	keys, err := cryptox.NewKeyMaterial()
	if err != nil {
		return model.AnalyzeResult{}, fmt.Errorf("failed to generate key material: %w", err)
	}

	now := s.now()
	content := model.ContentPayload{
		FileName:      params.FileName,
		FileSize:      int64(len(params.Data)),
		FileType:      fileType,
		UploadDate:    now,
		ExtractedText: text,
	}

	sealedContent, err := cryptox.Seal(content, keys.Key, keys.IV)
	if err != nil {
		return model.AnalyzeResult{}, fmt.Errorf("failed to seal content: %w", err)
	}
	sealedAnalysis, err := cryptox.Seal(json.RawMessage(analysis), keys.Key, keys.IV)
	if err != nil {
		return model.AnalyzeResult{}, fmt.Errorf("failed to seal analysis: %w", err)
	}

	record := model.ContractRecord{
		ID:                uuid.New(),
		FileHash:          fileHash,
		UploadedBy:        params.UploaderID,
		FileName:          params.FileName,
		FileSize:          content.FileSize,
		FileType:          fileType,
		EncryptedContent:  sealedContent.Ciphertext,
		ContentTag:        sealedContent.Tag,
		EncryptedAnalysis: sealedAnalysis.Ciphertext,
		AnalysisTag:       sealedAnalysis.Tag,
		EncryptionKey:     keys.Key,
		IV:                keys.IV,
		LastAccessed:      now,
		AnalysisDate:      now,
		AnalysisVersion:   s.analysisVersion,
		Status:            model.StatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if text != "" {
		record.TextHash = cryptox.HashNormalizedText(text)
	}

	saved, err := s.store.Create(ctx, record)
	if errors.Is(err, model.ErrDuplicateKey) {
		return s.recoverConflict(ctx, fileHash, params.UploaderID)
	}
	if err != nil {
		return model.AnalyzeResult{}, fmt.Errorf("failed to create record: %w", err)
	}

	s.logger.Info("stored contract analysis",
		"record_id", saved.ID,
		"uploader_id", saved.UploadedBy,
		"file_type", saved.FileType,
		"file_size", saved.FileSize)

	return model.AnalyzeResult{
		IsDuplicate: false,
		Record:      saved.Metadata(),
		Content:     content,
		Analysis:    json.RawMessage(analysis),
	}, nil
}

// recoverConflict returns the record that won a concurrent create. The
// winner's access counter is left alone.
func (s *Contracts) recoverConflict(ctx context.Context, fileHash string, uploaderID uuid.UUID) (model.AnalyzeResult, error) {
	winner, err := s.store.FindActive(ctx, fileHash, uploaderID)
	if errors.Is(err, model.ErrNotFound) {
		// The winner left the active state before it could be read back.
		return model.AnalyzeResult{}, fmt.Errorf("%w: conflicting record is no longer active", model.ErrStatusConflict)
	}
	if err != nil {
		return model.AnalyzeResult{}, fmt.Errorf("failed to load conflicting record: %w", err)
	}

	view, err := s.open(winner)
	if err != nil {
		return model.AnalyzeResult{}, err
	}

	s.logger.Info("concurrent upload resolved to existing record",
		"record_id", winner.ID,
		"uploader_id", uploaderID)

	return model.AnalyzeResult{
		IsDuplicate: true,
		Record:      view.Record,
		Content:     view.Content,
		Analysis:    view.Analysis,
	}, nil
}

func (s *Contracts) stage(ctx context.Context, uploaderID uuid.UUID, data []byte) (string, error) {
	if s.storage == nil {
		return "", nil
	}

	key := path.Join(uploaderID.String(), uuid.NewString())
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data))); err != nil {
		return "", fmt.Errorf("failed to stage upload: %w", err)
	}
	return key, nil
}

// unstage runs on every exit path, including cancellation of ctx.
func (s *Contracts) unstage(ctx context.Context, key string) {
	if s.storage == nil || key == "" {
		return
	}

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := s.storage.Delete(cleanupCtx, key); err != nil {
		s.logger.Error("failed to delete staged upload", "key", key, "error", err)
	}
}

// open unseals both payloads of a record.
func (s *Contracts) open(record model.ContractRecord) (model.RecordView, error) {
	view := model.RecordView{Record: record.Metadata()}

	err := cryptox.Unseal(
		cryptox.Sealed{Ciphertext: record.EncryptedAnalysis, Tag: record.AnalysisTag},
		record.EncryptionKey, record.IV, &view.Analysis,
	)
	if err != nil {
		s.logger.Error("stored analysis could not be decrypted", "record_id", record.ID, "error", err)
		return model.RecordView{}, fmt.Errorf("record %s: %w", record.ID, err)
	}

	err = cryptox.Unseal(
		cryptox.Sealed{Ciphertext: record.EncryptedContent, Tag: record.ContentTag},
		record.EncryptionKey, record.IV, &view.Content,
	)
	if err != nil {
		s.logger.Error("stored content could not be decrypted", "record_id", record.ID, "error", err)
		return model.RecordView{}, fmt.Errorf("record %s: %w", record.ID, err)
	}

	return view, nil
}

// GetRecord decrypts an active record owned by uploaderID and counts the access.
func (s *Contracts) GetRecord(ctx context.Context, recordID, uploaderID uuid.UUID) (model.RecordView, error) {
	record, err := s.owned(ctx, recordID, uploaderID)
	if err != nil {
		return model.RecordView{}, err
	}
	if record.Status != model.StatusActive {
		return model.RecordView{}, model.ErrNotFound
	}

	return s.openAndTrack(ctx, record)
}

// openAndTrack unseals record and only then counts the access, so an
// unreadable record keeps its counter.
func (s *Contracts) openAndTrack(ctx context.Context, record model.ContractRecord) (model.RecordView, error) {
	view, err := s.open(record)
	if err != nil {
		return model.RecordView{}, err
	}

	accessed, err := s.store.RecordAccess(ctx, record.ID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.RecordView{}, err
		}
		return model.RecordView{}, fmt.Errorf("failed to record access: %w", err)
	}

	view.Record = accessed.Metadata()
	return view, nil
}

// ListRecords returns one page of metadata. Zero values fall back to the defaults.
func (s *Contracts) ListRecords(ctx context.Context, filter model.ListFilter) (model.RecordPage, error) {
	if filter.UploaderID == uuid.Nil {
		return model.RecordPage{}, fmt.Errorf("%w: uploader id is required", model.ErrInvalidArgument)
	}
	if filter.Status == "" {
		filter.Status = model.StatusActive
	}
	if !filter.Status.Valid() {
		return model.RecordPage{}, fmt.Errorf("%w: unknown status %q", model.ErrInvalidArgument, filter.Status)
	}
	if filter.Page < 1 {
		filter.Page = DefaultPage
	}
	if filter.PageSize < 1 {
		filter.PageSize = DefaultPageSize
	}
	filter.PageSize = min(filter.PageSize, MaxPageSize)
	if filter.Page > math.MaxInt/filter.PageSize {
		return model.RecordPage{}, fmt.Errorf("%w: page %d is out of range", model.ErrInvalidArgument, filter.Page)
	}

	page, err := s.store.ListByUploader(ctx, filter)
	if err != nil {
		return model.RecordPage{}, fmt.Errorf("failed to list records: %w", err)
	}
	return page, nil
}

func (s *Contracts) Stats(ctx context.Context, uploaderID uuid.UUID) (model.UsageStats, error) {
	if uploaderID == uuid.Nil {
		return model.UsageStats{}, fmt.Errorf("%w: uploader id is required", model.ErrInvalidArgument)
	}

	stats, err := s.store.Stats(ctx, uploaderID)
	if err != nil {
		return model.UsageStats{}, fmt.Errorf("failed to aggregate records: %w", err)
	}
	return stats, nil
}

// Archive moves an active record out of dedup. Sealed payloads are untouched.
func (s *Contracts) Archive(ctx context.Context, recordID, uploaderID uuid.UUID) error {
	record, err := s.owned(ctx, recordID, uploaderID)
	if err != nil {
		return err
	}
	if record.Status != model.StatusActive {
		return model.ErrNotFound
	}
	return s.transition(ctx, record, model.StatusArchived)
}

// Delete soft-deletes an active or archived record.
func (s *Contracts) Delete(ctx context.Context, recordID, uploaderID uuid.UUID) error {
	record, err := s.owned(ctx, recordID, uploaderID)
	if err != nil {
		return err
	}
	if record.Status == model.StatusDeleted {
		return model.ErrNotFound
	}
	return s.transition(ctx, record, model.StatusDeleted)
}

func (s *Contracts) transition(ctx context.Context, record model.ContractRecord, to model.RecordStatus) error {
	if err := s.store.UpdateStatus(ctx, record.ID, record.Status, to); err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrStatusConflict) {
			return err
		}
		return fmt.Errorf("failed to update record status: %w", err)
	}

	s.logger.Info("record status changed",
		"record_id", record.ID,
		"uploader_id", record.UploadedBy,
		"from", record.Status,
		"to", to)
	return nil
}

func (s *Contracts) owned(ctx context.Context, recordID, uploaderID uuid.UUID) (model.ContractRecord, error) {
	record, err := s.store.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ContractRecord{}, err
		}
		return model.ContractRecord{}, fmt.Errorf("failed to get record: %w", err)
	}
	if record.UploadedBy != uploaderID {
		return model.ContractRecord{}, model.ErrOwnershipViolation
	}
	return record, nil
}
