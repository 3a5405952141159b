package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dumorro/e-nvites/internal/domain"
)

// PostgresEmailLogRepository implements EmailLogRepository using PostgreSQL
type PostgresEmailLogRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEmailLogRepository creates a new PostgresEmailLogRepository
func NewPostgresEmailLogRepository(pool *pgxpool.Pool) *PostgresEmailLogRepository {
	return &PostgresEmailLogRepository{pool: pool}
}

// Create persists one email attempt record
func (r *PostgresEmailLogRepository) Create(ctx context.Context, log *domain.EmailLog) error {
	query := `
		INSERT INTO email_logs (guest_id, recipient_email, recipient_name, subject, status, error_message, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.pool.QueryRow(ctx, query,
		log.GuestID,
		log.RecipientEmail,
		nullIfEmpty(log.RecipientName),
		nullIfEmpty(log.Subject),
		string(log.Status),
		nullIfEmpty(log.ErrorMessage),
		log.SentAt,
	).Scan(&log.ID)
}

// ListByGuest retrieves email logs for a guest, newest-first
func (r *PostgresEmailLogRepository) ListByGuest(ctx context.Context, guestID int64, limit int) ([]*domain.EmailLog, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, guest_id, recipient_email, COALESCE(recipient_name, ''),
		       COALESCE(subject, ''), status, COALESCE(error_message, ''), sent_at
		FROM email_logs
		WHERE guest_id = $1
		ORDER BY sent_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, guestID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]*domain.EmailLog, 0)
	for rows.Next() {
		log := &domain.EmailLog{}
		err := rows.Scan(
			&log.ID,
			&log.GuestID,
			&log.RecipientEmail,
			&log.RecipientName,
			&log.Subject,
			&log.Status,
			&log.ErrorMessage,
			&log.SentAt,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
