package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dumorro/e-nvites/internal/domain"
)

const eventColumns = `
	id, name, slug, COALESCE(description, '') AS description, event_date,
	COALESCE(location, '') AS location, template_name, welcome_message,
	show_qr_code, show_event_details, is_active, created_at, updated_at
`

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

// GetByID retrieves an event by ID
func (r *PostgresEventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetActiveBySlug retrieves an active event by slug
func (r *PostgresEventRepository) GetActiveBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1 AND is_active = TRUE`
	return r.scanOne(r.pool.QueryRow(ctx, query, slug))
}

// ListActive retrieves all active events ordered by event date
func (r *PostgresEventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE is_active = TRUE ORDER BY event_date ASC NULLS LAST`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		event := &domain.Event{}
		if err := scanEvent(rows, event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *PostgresEventRepository) scanOne(row pgx.Row) (*domain.Event, error) {
	event := &domain.Event{}
	err := scanEvent(row, event)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

func scanEvent(row pgx.Row, event *domain.Event) error {
	return row.Scan(
		&event.ID,
		&event.Name,
		&event.Slug,
		&event.Description,
		&event.EventDate,
		&event.Location,
		&event.TemplateName,
		&event.WelcomeMessage,
		&event.ShowQRCode,
		&event.ShowEventDetails,
		&event.IsActive,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
}
