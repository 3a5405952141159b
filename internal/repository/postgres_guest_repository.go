package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dumorro/e-nvites/internal/domain"
)

const guestColumns = `
	id, guid, COALESCE(qr_code, '') AS qr_code, name, COALESCE(email, '') AS email,
	COALESCE(phone, '') AS phone, event_id, status,
	COALESCE(invite_image_base64, '') AS invite_image_base64, created_at, updated_at
`

// uniqueViolation is the SQLSTATE for duplicate-key errors
const uniqueViolation = "23505"

// conflictConstraints maps the unique-constraint names from the schema to
// the field a caller cares about. Matching on constraint name rather than
// error message keeps the classification stable across Postgres locales.
var conflictConstraints = map[string]domain.ConflictField{
	"guests_event_qr_code_key": domain.ConflictQRCode,
	"guests_event_email_key":   domain.ConflictEmail,
	"guests_guid_key":          domain.ConflictGUID,
}

// classifyConflict converts a pgx unique-violation error on guests into a
// *domain.ConflictError; other errors pass through unchanged.
func classifyConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if field, ok := conflictConstraints[pgErr.ConstraintName]; ok {
			return &domain.ConflictError{Field: field, Constraint: pgErr.ConstraintName}
		}
		return &domain.ConflictError{Field: "", Constraint: pgErr.ConstraintName}
	}
	return err
}

// PostgresGuestRepository implements GuestRepository using PostgreSQL
type PostgresGuestRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresGuestRepository creates a new PostgresGuestRepository
func NewPostgresGuestRepository(pool *pgxpool.Pool) *PostgresGuestRepository {
	return &PostgresGuestRepository{pool: pool}
}

// GetByGUID retrieves a guest by its invitation GUID
func (r *PostgresGuestRepository) GetByGUID(ctx context.Context, guid string) (*domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests WHERE guid = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, guid))
}

// GetByID retrieves a guest by ID
func (r *PostgresGuestRepository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetByEmailAndEvent retrieves a guest by lowercased email within an event
func (r *PostgresGuestRepository) GetByEmailAndEvent(ctx context.Context, email string, eventID int64) (*domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests WHERE email = LOWER($1) AND event_id = $2`
	return r.scanOne(r.pool.QueryRow(ctx, query, email, eventID))
}

// GetByQRCodeAndEvent retrieves a guest by invite code within an event
func (r *PostgresGuestRepository) GetByQRCodeAndEvent(ctx context.Context, qrCode string, eventID int64) (*domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests WHERE qr_code = $1 AND event_id = $2`
	return r.scanOne(r.pool.QueryRow(ctx, query, qrCode, eventID))
}

// List retrieves guests newest-first with optional filters
func (r *PostgresGuestRepository) List(ctx context.Context, filter GuestFilter) ([]*domain.Guest, error) {
	where := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, string(filter.Status))
		argIndex++
	}
	if filter.EventID > 0 {
		where = append(where, fmt.Sprintf("event_id = $%d", argIndex))
		args = append(args, filter.EventID)
		argIndex++
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	query := `SELECT ` + guestColumns + ` FROM guests`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guests := make([]*domain.Guest, 0)
	for rows.Next() {
		guest := &domain.Guest{}
		if err := scanGuest(rows, guest); err != nil {
			return nil, err
		}
		guests = append(guests, guest)
	}
	return guests, rows.Err()
}

// Stats computes aggregate RSVP counts scoped to the event filter only,
// independently of any page limit applied to List.
func (r *PostgresGuestRepository) Stats(ctx context.Context, filter StatsFilter) (*domain.GuestStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'confirmed'),
		       COUNT(*) FILTER (WHERE status = 'declined'),
		       COUNT(*) FILTER (WHERE status = 'pending')
		FROM guests
	`
	args := []interface{}{}
	if filter.EventID > 0 {
		query += " WHERE event_id = $1"
		args = append(args, filter.EventID)
	}

	stats := &domain.GuestStats{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Confirmed,
		&stats.Declined,
		&stats.Pending,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// UpdateStatus sets the RSVP status of the guest with the given GUID
func (r *PostgresGuestRepository) UpdateStatus(ctx context.Context, guid string, status domain.GuestStatus) (*domain.Guest, error) {
	query := `
		UPDATE guests SET status = $2, updated_at = NOW()
		WHERE guid = $1
		RETURNING ` + guestColumns
	return r.scanOne(r.pool.QueryRow(ctx, query, guid, string(status)))
}

// UpdateStatusByID sets the RSVP status of a guest by primary key
func (r *PostgresGuestRepository) UpdateStatusByID(ctx context.Context, id int64, status domain.GuestStatus) (*domain.Guest, error) {
	query := `
		UPDATE guests SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + guestColumns
	return r.scanOne(r.pool.QueryRow(ctx, query, id, string(status)))
}

// UpdateInviteImage stores the base64 invite image data URI on a guest
func (r *PostgresGuestRepository) UpdateInviteImage(ctx context.Context, id int64, dataURI string) error {
	query := `UPDATE guests SET invite_image_base64 = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id, dataURI)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("guest %d not found", id)
	}
	return nil
}

// GetInviteImage returns the stored invite image data URI, "" when absent
func (r *PostgresGuestRepository) GetInviteImage(ctx context.Context, qrCode string, eventID int64) (string, error) {
	query := `
		SELECT COALESCE(invite_image_base64, '')
		FROM guests
		WHERE qr_code = $1 AND event_id = $2
	`
	var dataURI string
	err := r.pool.QueryRow(ctx, query, qrCode, eventID).Scan(&dataURI)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return dataURI, nil
}

// BulkInsert inserts guests in one multi-row statement. A uniqueness
// violation aborts the whole statement and is returned as
// *domain.ConflictError; nothing is inserted in that case.
func (r *PostgresGuestRepository) BulkInsert(ctx context.Context, guests []*domain.Guest) (int, error) {
	if len(guests) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO guests (guid, qr_code, name, email, phone, event_id, status) VALUES `)

	args := make([]interface{}, 0, len(guests)*7)
	for i, guest := range guests {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 7
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7)
		args = append(args,
			guest.GUID,
			guest.QRCode,
			guest.Name,
			nullIfEmpty(strings.ToLower(guest.Email)),
			nullIfEmpty(guest.Phone),
			guest.EventID,
			string(guest.Status),
		)
	}

	result, err := r.pool.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, classifyConflict(err)
	}
	return int(result.RowsAffected()), nil
}

func (r *PostgresGuestRepository) scanOne(row pgx.Row) (*domain.Guest, error) {
	guest := &domain.Guest{}
	err := scanGuest(row, guest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return guest, nil
}

func scanGuest(row pgx.Row, guest *domain.Guest) error {
	return row.Scan(
		&guest.ID,
		&guest.GUID,
		&guest.QRCode,
		&guest.Name,
		&guest.Email,
		&guest.Phone,
		&guest.EventID,
		&guest.Status,
		&guest.InviteImageBase64,
		&guest.CreatedAt,
		&guest.UpdatedAt,
	)
}

// nullIfEmpty returns nil for empty strings, otherwise returns the value
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
