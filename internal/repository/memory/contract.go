// Package memory is an in-process contract store for development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jurisai/contractvault/internal/model"
)

var _ model.ContractStore = (*ContractStore)(nil)

type activeKey struct {
	fileHash string
	uploader uuid.UUID
}

// ContractStore keeps records in maps guarded by one mutex. The active index
// plays the role of the partial unique index of the SQL backend.
type ContractStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]model.ContractRecord
	active  map[activeKey]uuid.UUID
	now     func() time.Time
}

func NewContractStore() *ContractStore {
	return &ContractStore{
		records: make(map[uuid.UUID]model.ContractRecord),
		active:  make(map[activeKey]uuid.UUID),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *ContractStore) FindActive(ctx context.Context, fileHash string, uploaderID uuid.UUID) (model.ContractRecord, error) {
	if err := ctx.Err(); err != nil {
		return model.ContractRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.active[activeKey{fileHash: fileHash, uploader: uploaderID}]
	if !ok {
		return model.ContractRecord{}, model.ErrNotFound
	}
	return s.records[id], nil
}

func (s *ContractStore) GetByID(ctx context.Context, id uuid.UUID) (model.ContractRecord, error) {
	if err := ctx.Err(); err != nil {
		return model.ContractRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return model.ContractRecord{}, model.ErrNotFound
	}
	return record, nil
}

func (s *ContractStore) Create(ctx context.Context, record model.ContractRecord) (model.ContractRecord, error) {
	if err := ctx.Err(); err != nil {
		return model.ContractRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := activeKey{fileHash: record.FileHash, uploader: record.UploadedBy}
	if _, exists := s.active[key]; exists {
		return model.ContractRecord{}, model.ErrDuplicateKey
	}
	if _, exists := s.records[record.ID]; exists {
		return model.ContractRecord{}, model.ErrDuplicateKey
	}

	record.Status = model.StatusActive
	s.records[record.ID] = record
	s.active[key] = record.ID
	return record, nil
}

func (s *ContractStore) RecordAccess(ctx context.Context, id uuid.UUID) (model.ContractRecord, error) {
	if err := ctx.Err(); err != nil {
		return model.ContractRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok || record.Status != model.StatusActive {
		return model.ContractRecord{}, model.ErrNotFound
	}

	ts := s.now()
	record.AccessCount++
	record.LastAccessed = ts
	record.UpdatedAt = ts
	s.records[id] = record
	return record, nil
}

func (s *ContractStore) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.RecordStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return model.ErrNotFound
	}
	if record.Status != from {
		return model.ErrStatusConflict
	}

	key := activeKey{fileHash: record.FileHash, uploader: record.UploadedBy}
	if to == model.StatusActive {
		if _, exists := s.active[key]; exists {
			return model.ErrDuplicateKey
		}
		s.active[key] = id
	} else if from == model.StatusActive {
		delete(s.active, key)
	}

	record.Status = to
	record.UpdatedAt = s.now()
	s.records[id] = record
	return nil
}

func (s *ContractStore) ListByUploader(ctx context.Context, filter model.ListFilter) (model.RecordPage, error) {
	if err := ctx.Err(); err != nil {
		return model.RecordPage{}, err
	}

	s.mu.RLock()
	matched := make([]model.ContractRecord, 0)
	for _, r := range s.records {
		if r.UploadedBy == filter.UploaderID && r.Status == filter.Status {
			matched = append(matched, r)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	page := model.RecordPage{
		Items:    []model.RecordMetadata{},
		Total:    int64(len(matched)),
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.PageSize <= 0 {
		return page, nil
	}
	page.TotalPages = (len(matched) + filter.PageSize - 1) / filter.PageSize

	start := filter.Offset()
	if start < 0 || start >= len(matched) {
		return page, nil
	}
	end := min(start+filter.PageSize, len(matched))
	for _, r := range matched[start:end] {
		page.Items = append(page.Items, r.Metadata())
	}
	return page, nil
}

func (s *ContractStore) Stats(ctx context.Context, uploaderID uuid.UUID) (model.UsageStats, error) {
	if err := ctx.Err(); err != nil {
		return model.UsageStats{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := model.UsageStats{ByFileType: map[string]int64{}}
	for _, r := range s.records {
		if r.UploadedBy != uploaderID || r.Status != model.StatusActive {
			continue
		}
		stats.TotalRecords++
		stats.TotalAccessCount += r.AccessCount
		stats.ByFileType[r.FileType]++
	}
	if stats.TotalRecords > 0 {
		stats.AverageAccessCount = float64(stats.TotalAccessCount) / float64(stats.TotalRecords)
	}
	return stats, nil
}
