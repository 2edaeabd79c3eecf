package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"encomendas/internal/domain"
	"encomendas/internal/port"
)

// pgUndefinedTable is raised when the pdf_cache table has not been created
// yet. The sweeper can start before migrations run, so that case is a
// no-op rather than an error.
const pgUndefinedTable = "42P01"

type pdfCacheRepo struct {
	db *sqlx.DB
}

// NewPDFCacheRepo creates a PostgreSQL-backed CacheRepository.
func NewPDFCacheRepo(db *sqlx.DB) port.CacheRepository {
	return &pdfCacheRepo{db: db}
}

func (r *pdfCacheRepo) Lookup(ctx context.Context, fileHash string) (*domain.CacheEntry, error) {
	var entry domain.CacheEntry
	err := r.db.GetContext(ctx, &entry,
		"SELECT * FROM pdf_cache WHERE file_hash = $1 AND expires_at > NOW()", fileHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if isUndefinedTable(err) {
			return nil, domain.ErrCacheUnavailable
		}
		return nil, fmt.Errorf("pdfCacheRepo.Lookup: %w", err)
	}
	return &entry, nil
}

func (r *pdfCacheRepo) Store(ctx context.Context, fileHash, originalName string, result *domain.ParseResult, ttlHours int) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("pdfCacheRepo.Store marshal: %w", err)
	}

	query := `INSERT INTO pdf_cache (file_hash, original_name, result, created_at, expires_at)
		VALUES ($1, $2, $3, NOW(), NOW() + make_interval(hours => $4))
		ON CONFLICT (file_hash)
		DO UPDATE SET result = $3, original_name = $2,
			expires_at = NOW() + make_interval(hours => $4)`

	if _, err := r.db.ExecContext(ctx, query, fileHash, originalName, payload, ttlHours); err != nil {
		if isUndefinedTable(err) {
			return domain.ErrCacheUnavailable
		}
		return fmt.Errorf("pdfCacheRepo.Store: %w", err)
	}
	return nil
}

func (r *pdfCacheRepo) SweepExpired(ctx context.Context) (int, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM pdf_cache WHERE expires_at < NOW()")
	if err != nil {
		if isUndefinedTable(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("pdfCacheRepo.SweepExpired: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pdfCacheRepo.SweepExpired rows: %w", err)
	}
	return int(rows), nil
}

func (r *pdfCacheRepo) Stats(ctx context.Context) (*domain.CacheStats, error) {
	var stats domain.CacheStats
	query := `SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE expires_at < NOW()) AS expired,
		COUNT(*) FILTER (WHERE expires_at >= NOW()) AS active,
		COALESCE(SUM(LENGTH(result::text)), 0) AS size_bytes
	FROM pdf_cache`

	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		if isUndefinedTable(err) {
			return &domain.CacheStats{}, nil
		}
		return nil, fmt.Errorf("pdfCacheRepo.Stats: %w", err)
	}
	return &stats, nil
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable
}
