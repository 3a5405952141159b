package domain

import (
	"fmt"
)

// ConflictField identifies which unique constraint a duplicate-key error hit
type ConflictField string

const (
	ConflictQRCode ConflictField = "qr_code"
	ConflictEmail  ConflictField = "email"
	ConflictGUID   ConflictField = "guid"
)

// ConflictError is a uniqueness violation surfaced by the store, classified
// by constraint so callers can tell a qr_code collision from an email
// collision without inspecting driver messages.
type ConflictError struct {
	Field      ConflictField
	Constraint string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("duplicate %s (constraint %s)", e.Field, e.Constraint)
}

// LocalizedMessage returns the user-facing Portuguese message for the
// conflict, matching what the guest-list admins see.
func (e *ConflictError) LocalizedMessage() string {
	switch e.Field {
	case ConflictQRCode:
		return "QR Code já cadastrado para este evento"
	case ConflictEmail:
		return "Email já cadastrado para este evento"
	default:
		return "Registro duplicado"
	}
}
