package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Dumorro/e-nvites/internal/domain"
)

func TestClassifyConflict_KnownConstraints(t *testing.T) {
	tests := []struct {
		constraint string
		wantField  domain.ConflictField
	}{
		{"guests_event_qr_code_key", domain.ConflictQRCode},
		{"guests_event_email_key", domain.ConflictEmail},
		{"guests_guid_key", domain.ConflictGUID},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: "23505", ConstraintName: tt.constraint}

			err := classifyConflict(pgErr)

			var conflict *domain.ConflictError
			if !errors.As(err, &conflict) {
				t.Fatalf("classifyConflict() = %v, want *domain.ConflictError", err)
			}
			if conflict.Field != tt.wantField {
				t.Errorf("Field = %s, want %s", conflict.Field, tt.wantField)
			}
			if conflict.Constraint != tt.constraint {
				t.Errorf("Constraint = %s, want %s", conflict.Constraint, tt.constraint)
			}
		})
	}
}

func TestClassifyConflict_UnknownConstraint(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "some_other_key"}

	err := classifyConflict(pgErr)

	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("classifyConflict() = %v, want *domain.ConflictError", err)
	}
	if conflict.Field != "" {
		t.Errorf("Field = %s, want empty for unknown constraint", conflict.Field)
	}
	// Unknown constraints still produce the generic duplicate message
	if conflict.LocalizedMessage() != "Registro duplicado" {
		t.Errorf("LocalizedMessage() = %q, want generic", conflict.LocalizedMessage())
	}
}

func TestClassifyConflict_WrappedError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "guests_event_email_key"}
	wrapped := fmt.Errorf("bulk insert: %w", pgErr)

	var conflict *domain.ConflictError
	if !errors.As(classifyConflict(wrapped), &conflict) {
		t.Fatal("classifyConflict() should see through wrapped errors")
	}
}

func TestClassifyConflict_PassthroughNonUnique(t *testing.T) {
	// A different SQLSTATE is not a conflict
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "guests_event_id_fkey"}
	if err := classifyConflict(pgErr); !errors.Is(err, pgErr) {
		t.Errorf("classifyConflict() = %v, want the original error", err)
	}

	// Plain errors pass through unchanged
	plain := errors.New("connection reset")
	if err := classifyConflict(plain); !errors.Is(err, plain) {
		t.Errorf("classifyConflict() = %v, want the original error", err)
	}
}
