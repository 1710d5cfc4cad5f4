package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jurisai/contractvault/internal/model"
)

var _ model.ContractStore = (*ContractRepository)(nil)

const uniqueViolation = "23505"

const contractColumns = `id, file_hash, text_hash, uploaded_by, file_name, file_size, file_type,
	encrypted_content, content_tag, encrypted_analysis, analysis_tag, encryption_key, iv,
	access_count, last_accessed, analysis_date, analysis_version, status, created_at, updated_at`

const metadataColumns = `id, file_hash, text_hash, file_name, file_size, file_type,
	access_count, last_accessed, analysis_date, analysis_version, status`

type ContractRepository struct {
	db DBTX
}

func NewContractRepository(db DBTX) *ContractRepository {
	return &ContractRepository{
		db: db,
	}
}

func (r *ContractRepository) FindActive(ctx context.Context, fileHash string, uploaderID uuid.UUID) (model.ContractRecord, error) {
	query := `SELECT ` + contractColumns + `
		FROM contract_records
		WHERE file_hash = $1 AND uploaded_by = $2 AND status = 'active'`

	record, err := scanContract(r.db.QueryRowContext(ctx, query, fileHash, uploaderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ContractRecord{}, model.ErrNotFound
		}
		return model.ContractRecord{}, fmt.Errorf("failed to find active record: %w", err)
	}
	return record, nil
}

func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (model.ContractRecord, error) {
	query := `SELECT ` + contractColumns + `
		FROM contract_records
		WHERE id = $1`

	record, err := scanContract(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ContractRecord{}, model.ErrNotFound
		}
		return model.ContractRecord{}, fmt.Errorf("failed to get record: %w", err)
	}
	return record, nil
}

// Create inserts an active record. A concurrent insert of the same
// (file_hash, uploaded_by) pair yields model.ErrDuplicateKey.
func (r *ContractRepository) Create(ctx context.Context, record model.ContractRecord) (model.ContractRecord, error) {
	query := `
		INSERT INTO contract_records (` + contractColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, 'active', $18, $19)
		ON CONFLICT (file_hash, uploaded_by) WHERE status = 'active' DO NOTHING
		RETURNING ` + contractColumns

	saved, err := scanContract(r.db.QueryRowContext(ctx, query,
		record.ID, record.FileHash, record.TextHash, record.UploadedBy,
		record.FileName, record.FileSize, record.FileType,
		record.EncryptedContent, record.ContentTag, record.EncryptedAnalysis, record.AnalysisTag,
		record.EncryptionKey, record.IV,
		record.AccessCount, record.LastAccessed, record.AnalysisDate, record.AnalysisVersion,
		record.CreatedAt, record.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return model.ContractRecord{}, model.ErrDuplicateKey
		}
		return model.ContractRecord{}, fmt.Errorf("failed to create record: %w", err)
	}
	return saved, nil
}

// RecordAccess increments the access counter of an active record in one statement.
func (r *ContractRepository) RecordAccess(ctx context.Context, id uuid.UUID) (model.ContractRecord, error) {
	query := `
		UPDATE contract_records
		SET access_count = access_count + 1, last_accessed = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'active'
		RETURNING ` + contractColumns

	record, err := scanContract(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ContractRecord{}, model.ErrNotFound
		}
		return model.ContractRecord{}, fmt.Errorf("failed to record access: %w", err)
	}
	return record, nil
}

func (r *ContractRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.RecordStatus) error {
	const query = `UPDATE contract_records SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`

	res, err := r.db.ExecContext(ctx, query, id, string(from), string(to))
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateKey
		}
		return fmt.Errorf("failed to update status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n > 0 {
		return nil
	}

	var current string
	err = r.db.QueryRowContext(ctx, `SELECT status FROM contract_records WHERE id = $1`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to read status: %w", err)
	}
	return model.ErrStatusConflict
}

func (r *ContractRepository) ListByUploader(ctx context.Context, filter model.ListFilter) (model.RecordPage, error) {
	const countQuery = `SELECT COUNT(*) FROM contract_records WHERE uploaded_by = $1 AND status = $2`

	page := model.RecordPage{
		Items:    []model.RecordMetadata{},
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}

	if err := r.db.QueryRowContext(ctx, countQuery, filter.UploaderID, string(filter.Status)).Scan(&page.Total); err != nil {
		return model.RecordPage{}, fmt.Errorf("failed to count records: %w", err)
	}
	if filter.PageSize > 0 {
		page.TotalPages = int((page.Total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	}

	query := `SELECT ` + metadataColumns + `
		FROM contract_records
		WHERE uploaded_by = $1 AND status = $2
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query, filter.UploaderID, string(filter.Status), filter.PageSize, filter.Offset())
	if err != nil {
		return model.RecordPage{}, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item   model.RecordMetadata
			status string
		)
		if err := rows.Scan(
			&item.ID, &item.FileHash, &item.TextHash, &item.FileName, &item.FileSize, &item.FileType,
			&item.AccessCount, &item.LastAccessed, &item.AnalysisDate, &item.AnalysisVersion, &status,
		); err != nil {
			return model.RecordPage{}, fmt.Errorf("failed to scan record: %w", err)
		}
		item.Status = model.RecordStatus(status)
		page.Items = append(page.Items, item)
	}
	if err := rows.Err(); err != nil {
		return model.RecordPage{}, fmt.Errorf("failed to iterate records: %w", err)
	}

	return page, nil
}

func (r *ContractRepository) Stats(ctx context.Context, uploaderID uuid.UUID) (model.UsageStats, error) {
	const totalsQuery = `
		SELECT COUNT(*), COALESCE(SUM(access_count), 0)
		FROM contract_records
		WHERE uploaded_by = $1 AND status = 'active'`
	const byTypeQuery = `
		SELECT file_type, COUNT(*)
		FROM contract_records
		WHERE uploaded_by = $1 AND status = 'active'
		GROUP BY file_type`

	stats := model.UsageStats{ByFileType: map[string]int64{}}

	if err := r.db.QueryRowContext(ctx, totalsQuery, uploaderID).Scan(&stats.TotalRecords, &stats.TotalAccessCount); err != nil {
		return model.UsageStats{}, fmt.Errorf("failed to aggregate records: %w", err)
	}
	if stats.TotalRecords > 0 {
		stats.AverageAccessCount = float64(stats.TotalAccessCount) / float64(stats.TotalRecords)
	}

	rows, err := r.db.QueryContext(ctx, byTypeQuery, uploaderID)
	if err != nil {
		return model.UsageStats{}, fmt.Errorf("failed to group records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			fileType string
			count    int64
		)
		if err := rows.Scan(&fileType, &count); err != nil {
			return model.UsageStats{}, fmt.Errorf("failed to scan group: %w", err)
		}
		stats.ByFileType[fileType] = count
	}
	if err := rows.Err(); err != nil {
		return model.UsageStats{}, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return stats, nil
}

func scanContract(row rowScanner) (model.ContractRecord, error) {
	var (
		record model.ContractRecord
		status string
	)
	err := row.Scan(
		&record.ID, &record.FileHash, &record.TextHash, &record.UploadedBy,
		&record.FileName, &record.FileSize, &record.FileType,
		&record.EncryptedContent, &record.ContentTag, &record.EncryptedAnalysis, &record.AnalysisTag,
		&record.EncryptionKey, &record.IV,
		&record.AccessCount, &record.LastAccessed, &record.AnalysisDate, &record.AnalysisVersion,
		&status, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return model.ContractRecord{}, err
	}
	record.Status = model.RecordStatus(status)
	record.LastAccessed = record.LastAccessed.UTC()
	record.AnalysisDate = record.AnalysisDate.UTC()
	record.CreatedAt = record.CreatedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()
	return record, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
