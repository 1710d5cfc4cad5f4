//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jurisai/contractvault/internal/model"
	repo "github.com/jurisai/contractvault/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "contractvault_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/contractvault_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newRecord(fileHash string, uploader uuid.UUID) model.ContractRecord {
	ts := time.Now().UTC().Truncate(time.Microsecond)
	return model.ContractRecord{
		ID:                uuid.New(),
		FileHash:          fileHash,
		TextHash:          "text-" + fileHash,
		UploadedBy:        uploader,
		FileName:          "contract.txt",
		FileSize:          128,
		FileType:          "text/plain",
		EncryptedContent:  "00",
		ContentTag:        "11",
		EncryptedAnalysis: "22",
		AnalysisTag:       "33",
		EncryptionKey:     uuid.NewString(),
		IV:                uuid.NewString(),
		AccessCount:       1,
		LastAccessed:      ts,
		AnalysisDate:      ts,
		AnalysisVersion:   "1.0",
		Status:            model.StatusActive,
		CreatedAt:         ts,
		UpdatedAt:         ts,
	}
}

func TestContractRepository_Postgres(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.Ping(ctx))

	cr := repo.NewContractRepository(conn.DB)

	t.Run("create_and_find", func(t *testing.T) {
		uploader := uuid.New()
		rec := newRecord("hash-a", uploader)

		saved, err := cr.Create(ctx, rec)
		require.NoError(t, err)
		assert.Equal(t, rec.ID, saved.ID)
		assert.Equal(t, model.StatusActive, saved.Status)

		found, err := cr.FindActive(ctx, "hash-a", uploader)
		require.NoError(t, err)
		assert.Equal(t, rec.ID, found.ID)
		assert.Equal(t, rec.EncryptedAnalysis, found.EncryptedAnalysis)

		_, err = cr.FindActive(ctx, "hash-a", uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("duplicate_active_rejected", func(t *testing.T) {
		uploader := uuid.New()
		_, err := cr.Create(ctx, newRecord("hash-b", uploader))
		require.NoError(t, err)

		_, err = cr.Create(ctx, newRecord("hash-b", uploader))
		assert.ErrorIs(t, err, model.ErrDuplicateKey)

		_, err = cr.Create(ctx, newRecord("hash-b", uuid.New()))
		assert.NoError(t, err)
	})

	t.Run("concurrent_create_single_winner", func(t *testing.T) {
		uploader := uuid.New()
		const n = 8
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			winners int
			dupes   int
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := cr.Create(ctx, newRecord("hash-race", uploader))
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					winners++
				case errors.Is(err, model.ErrDuplicateKey):
					dupes++
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, winners)
		assert.Equal(t, n-1, dupes)
	})

	t.Run("record_access_is_atomic", func(t *testing.T) {
		rec, err := cr.Create(ctx, newRecord("hash-c", uuid.New()))
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = cr.RecordAccess(ctx, rec.ID)
			}()
		}
		wg.Wait()

		got, err := cr.GetByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(11), got.AccessCount)
	})

	t.Run("soft_delete_frees_fingerprint", func(t *testing.T) {
		uploader := uuid.New()
		rec, err := cr.Create(ctx, newRecord("hash-d", uploader))
		require.NoError(t, err)

		require.NoError(t, cr.UpdateStatus(ctx, rec.ID, model.StatusActive, model.StatusDeleted))
		assert.ErrorIs(t, cr.UpdateStatus(ctx, rec.ID, model.StatusActive, model.StatusDeleted), model.ErrStatusConflict)
		assert.ErrorIs(t, cr.UpdateStatus(ctx, uuid.New(), model.StatusActive, model.StatusDeleted), model.ErrNotFound)

		_, err = cr.FindActive(ctx, "hash-d", uploader)
		assert.ErrorIs(t, err, model.ErrNotFound)
		_, err = cr.RecordAccess(ctx, rec.ID)
		assert.ErrorIs(t, err, model.ErrNotFound)

		_, err = cr.Create(ctx, newRecord("hash-d", uploader))
		assert.NoError(t, err)
	})

	t.Run("list_and_stats", func(t *testing.T) {
		uploader := uuid.New()
		for i := 0; i < 3; i++ {
			r := newRecord(fmt.Sprintf("hash-list-%d", i), uploader)
			if i == 2 {
				r.FileType = "text/html"
			}
			_, err := cr.Create(ctx, r)
			require.NoError(t, err)
		}

		page, err := cr.ListByUploader(ctx, model.ListFilter{
			UploaderID: uploader,
			Status:     model.StatusActive,
			Page:       1,
			PageSize:   2,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 2, page.TotalPages)
		assert.Len(t, page.Items, 2)

		stats, err := cr.Stats(ctx, uploader)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.TotalRecords)
		assert.Equal(t, int64(3), stats.TotalAccessCount)
		assert.InDelta(t, 1.0, stats.AverageAccessCount, 1e-9)
		assert.Equal(t, map[string]int64{"text/plain": 2, "text/html": 1}, stats.ByFileType)
	})
}
