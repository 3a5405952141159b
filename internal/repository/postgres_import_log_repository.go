package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dumorro/e-nvites/internal/domain"
)

// PostgresImportLogRepository implements ImportLogRepository using PostgreSQL
type PostgresImportLogRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresImportLogRepository creates a new PostgresImportLogRepository
func NewPostgresImportLogRepository(pool *pgxpool.Pool) *PostgresImportLogRepository {
	return &PostgresImportLogRepository{pool: pool}
}

// Create persists one import attempt record
func (r *PostgresImportLogRepository) Create(ctx context.Context, log *domain.ImportLog) error {
	report, err := json.Marshal(log.ErrorReport)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO import_logs (event_id, filename, total_rows, inserted, error_count, error_report, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		log.EventID,
		log.Filename,
		log.TotalRows,
		log.Inserted,
		log.ErrorCount,
		report,
		string(log.Status),
	).Scan(&log.ID, &log.CreatedAt)
}

// List retrieves import logs newest-first, optionally scoped to an event
func (r *PostgresImportLogRepository) List(ctx context.Context, eventID int64, limit int) ([]*domain.ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT l.id, l.event_id, e.name, l.filename, l.total_rows, l.inserted,
		       l.error_count, l.error_report, l.status, l.created_at
		FROM import_logs l
		JOIN events e ON e.id = l.event_id
	`
	args := []interface{}{}
	if eventID > 0 {
		query += " WHERE l.event_id = $1 ORDER BY l.created_at DESC LIMIT $2"
		args = append(args, eventID, limit)
	} else {
		query += " ORDER BY l.created_at DESC LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]*domain.ImportLog, 0)
	for rows.Next() {
		log := &domain.ImportLog{}
		var report []byte
		err := rows.Scan(
			&log.ID,
			&log.EventID,
			&log.EventName,
			&log.Filename,
			&log.TotalRows,
			&log.Inserted,
			&log.ErrorCount,
			&report,
			&log.Status,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(report, &log.ErrorReport); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
