package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurisai/contractvault/internal/model"
)

func newRecord(fileHash string, uploader uuid.UUID, created time.Time) model.ContractRecord {
	return model.ContractRecord{
		ID:          uuid.New(),
		FileHash:    fileHash,
		UploadedBy:  uploader,
		FileName:    "contract.txt",
		FileSize:    10,
		FileType:    "text/plain",
		AccessCount: 1,
		Status:      model.StatusActive,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestContractStore_CreateAndFind(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewContractStore()
	uploader := uuid.New()

	rec, err := s.Create(ctx, newRecord("h1", uploader, time.Now()))
	require.NoError(t, err)

	got, err := s.FindActive(ctx, "h1", uploader)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)

	_, err = s.FindActive(ctx, "h1", uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = s.Create(ctx, newRecord("h1", uploader, time.Now()))
	assert.ErrorIs(t, err, model.ErrDuplicateKey)

	_, err = s.Create(ctx, newRecord("h1", uuid.New(), time.Now()))
	assert.NoError(t, err)
}

func TestContractStore_ConcurrentCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewContractStore()
	uploader := uuid.New()

	const n = 16
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(ctx, newRecord("race", uploader, time.Now()))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, model.ErrDuplicateKey):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)
}

func TestContractStore_RecordAccess(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewContractStore()
	rec, err := s.Create(ctx, newRecord("h", uuid.New(), time.Now()))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.RecordAccess(ctx, rec.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.AccessCount)
	assert.False(t, got.LastAccessed.IsZero())

	_, err = s.RecordAccess(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestContractStore_UpdateStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewContractStore()
	uploader := uuid.New()
	rec, err := s.Create(ctx, newRecord("h", uploader, time.Now()))
	require.NoError(t, err)

	require.NoError(t, s.UpdateStatus(ctx, rec.ID, model.StatusActive, model.StatusArchived))
	assert.ErrorIs(t, s.UpdateStatus(ctx, rec.ID, model.StatusActive, model.StatusDeleted), model.ErrStatusConflict)
	assert.ErrorIs(t, s.UpdateStatus(ctx, uuid.New(), model.StatusActive, model.StatusDeleted), model.ErrNotFound)

	_, err = s.FindActive(ctx, "h", uploader)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.RecordAccess(ctx, rec.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	fresh, err := s.Create(ctx, newRecord("h", uploader, time.Now()))
	require.NoError(t, err)
	assert.NotEqual(t, rec.ID, fresh.ID)

	assert.ErrorIs(t, s.UpdateStatus(ctx, rec.ID, model.StatusArchived, model.StatusActive), model.ErrDuplicateKey)
}

func TestContractStore_ListByUploader(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewContractStore()
	uploader := uuid.New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := s.Create(ctx, newRecord(fmt.Sprintf("h%d", i), uploader, base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}
	_, err := s.Create(ctx, newRecord("other", uuid.New(), base))
	require.NoError(t, err)

	tests := []struct {
		name      string
		page      int
		size      int
		wantNames []string
		wantPages int
	}{
		{name: "first page newest first", page: 1, size: 2, wantNames: []string{"h4", "h3"}, wantPages: 3},
		{name: "last partial page", page: 3, size: 2, wantNames: []string{"h0"}, wantPages: 3},
		{name: "past the end", page: 9, size: 2, wantNames: nil, wantPages: 3},
		{name: "page beyond int range", page: 1<<57 + 1, size: 100, wantNames: nil, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.ListByUploader(ctx, model.ListFilter{
				UploaderID: uploader,
				Status:     model.StatusActive,
				Page:       tt.page,
				PageSize:   tt.size,
			})
			require.NoError(t, err)
			assert.Equal(t, int64(5), page.Total)
			assert.Equal(t, tt.wantPages, page.TotalPages)

			var hashes []string
			for _, item := range page.Items {
				hashes = append(hashes, item.FileHash)
			}
			assert.Equal(t, tt.wantNames, hashes)
		})
	}
}

func TestContractStore_Stats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewContractStore()
	uploader := uuid.New()

	a, err := s.Create(ctx, newRecord("a", uploader, time.Now()))
	require.NoError(t, err)
	html := newRecord("b", uploader, time.Now())
	html.FileType = "text/html"
	_, err = s.Create(ctx, html)
	require.NoError(t, err)
	gone, err := s.Create(ctx, newRecord("c", uploader, time.Now()))
	require.NoError(t, err)
	require.NoError(t, s.UpdateStatus(ctx, gone.ID, model.StatusActive, model.StatusDeleted))

	_, err = s.RecordAccess(ctx, a.ID)
	require.NoError(t, err)

	stats, err := s.Stats(ctx, uploader)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalRecords)
	assert.Equal(t, int64(3), stats.TotalAccessCount)
	assert.InDelta(t, 1.5, stats.AverageAccessCount, 1e-9)
	assert.Equal(t, map[string]int64{"text/plain": 1, "text/html": 1}, stats.ByFileType)
}

func TestContractStore_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewContractStore().FindActive(ctx, "h", uuid.New())
	assert.ErrorIs(t, err, context.Canceled)
}
