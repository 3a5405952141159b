package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGuestStatus_IsValid(t *testing.T) {
	valid := []GuestStatus{StatusPending, StatusConfirmed, StatusDeclined}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("IsValid(%s) = false, want true", s)
		}
	}

	if GuestStatus("maybe").IsValid() {
		t.Error("IsValid(maybe) = true, want false")
	}
	if GuestStatus("").IsValid() {
		t.Error("IsValid(empty) = true, want false")
	}
}

func TestGuestStatus_IsFinal(t *testing.T) {
	if !StatusConfirmed.IsFinal() {
		t.Error("confirmed should be final")
	}
	if !StatusDeclined.IsFinal() {
		t.Error("declined should be final")
	}
	if StatusPending.IsFinal() {
		t.Error("guests cannot move back to pending")
	}
}

func TestGuest_InviteImageNeverSerialized(t *testing.T) {
	guest := Guest{
		ID:                1,
		GUID:              "guid-1",
		Name:              "Maria",
		InviteImageBase64: "data:image/png;base64,cGl4ZWxz",
	}

	data, err := json.Marshal(guest)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if strings.Contains(string(data), "cGl4ZWxz") {
		t.Error("invite image payload must not leak into JSON responses")
	}
}

func TestConflictError_LocalizedMessage(t *testing.T) {
	tests := []struct {
		field ConflictField
		want  string
	}{
		{ConflictQRCode, "QR Code já cadastrado para este evento"},
		{ConflictEmail, "Email já cadastrado para este evento"},
		{ConflictGUID, "Registro duplicado"},
		{ConflictField("other"), "Registro duplicado"},
	}

	for _, tt := range tests {
		err := &ConflictError{Field: tt.field, Constraint: "some_constraint"}
		if got := err.LocalizedMessage(); got != tt.want {
			t.Errorf("LocalizedMessage(%s) = %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestConflictError_ErrorIncludesConstraint(t *testing.T) {
	err := &ConflictError{Field: ConflictEmail, Constraint: "guests_event_email_key"}
	if !strings.Contains(err.Error(), "guests_event_email_key") {
		t.Errorf("Error() = %q, want constraint name included", err.Error())
	}
}
