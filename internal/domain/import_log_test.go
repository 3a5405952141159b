package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewErrorReport_SummaryCounts(t *testing.T) {
	report := NewErrorReport([]ImportError{
		{Row: 2, Type: ImportErrorParse, Message: "linha curta"},
		{Row: 3, Type: ImportErrorValidation, Message: "email inválido"},
		{Row: 4, Type: ImportErrorValidation, Message: "nome obrigatório"},
		{Row: 0, Type: ImportErrorDuplicate, Message: "duplicado"},
	}, 1500*time.Millisecond)

	if !report.Detailed {
		t.Error("NewErrorReport() should produce the detailed variant")
	}
	if report.Summary.Parse != 1 {
		t.Errorf("Summary.Parse = %d, want 1", report.Summary.Parse)
	}
	if report.Summary.Validation != 2 {
		t.Errorf("Summary.Validation = %d, want 2", report.Summary.Validation)
	}
	if report.Summary.Duplicate != 1 {
		t.Errorf("Summary.Duplicate = %d, want 1", report.Summary.Duplicate)
	}
	if report.Summary.Database != 0 {
		t.Errorf("Summary.Database = %d, want 0", report.Summary.Database)
	}
	if report.DurationMS != 1500 {
		t.Errorf("DurationMS = %d, want 1500", report.DurationMS)
	}
}

func TestErrorReport_MarshalDetailed(t *testing.T) {
	report := NewErrorReport([]ImportError{
		{Row: 2, Type: ImportErrorParse, Message: "linha curta"},
	}, time.Second)

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if _, ok := parsed["errors"]; !ok {
		t.Error("detailed report should serialize as an object with errors")
	}
	if _, ok := parsed["summary"]; !ok {
		t.Error("detailed report should carry a summary")
	}
	if parsed["duration_ms"] != float64(1000) {
		t.Errorf("duration_ms = %v, want 1000", parsed["duration_ms"])
	}
}

func TestErrorReport_MarshalLegacy(t *testing.T) {
	report := ErrorReport{
		Errors: []ImportError{{Row: 2, Type: ImportErrorParse, Message: "linha curta"}},
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if data[0] != '[' {
		t.Errorf("legacy report should serialize as a bare array, got %s", data)
	}

	// nil errors still produce a valid empty array
	empty, err := json.Marshal(ErrorReport{})
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if string(empty) != "[]" {
		t.Errorf("empty legacy report = %s, want []", empty)
	}
}

func TestErrorReport_UnmarshalBothShapes(t *testing.T) {
	var legacy ErrorReport
	if err := json.Unmarshal([]byte(`[{"row":2,"type":"parse","message":"linha curta"}]`), &legacy); err != nil {
		t.Fatalf("Unmarshal legacy failed: %v", err)
	}
	if legacy.Detailed {
		t.Error("bare array should parse as the legacy variant")
	}
	if len(legacy.Errors) != 1 || legacy.Errors[0].Row != 2 {
		t.Errorf("Errors = %+v, want one entry at row 2", legacy.Errors)
	}

	var detailed ErrorReport
	input := `{"errors":[{"row":3,"type":"validation","message":"email inválido"}],"summary":{"parse":0,"validation":1,"duplicate":0,"database":0},"duration_ms":250}`
	if err := json.Unmarshal([]byte(input), &detailed); err != nil {
		t.Fatalf("Unmarshal detailed failed: %v", err)
	}
	if !detailed.Detailed {
		t.Error("object should parse as the detailed variant")
	}
	if detailed.Summary.Validation != 1 {
		t.Errorf("Summary.Validation = %d, want 1", detailed.Summary.Validation)
	}
	if detailed.DurationMS != 250 {
		t.Errorf("DurationMS = %d, want 250", detailed.DurationMS)
	}
}

func TestErrorReport_RoundTrip(t *testing.T) {
	original := NewErrorReport([]ImportError{
		{Row: 5, Type: ImportErrorDatabase, Message: "erro no banco"},
	}, 42*time.Millisecond)

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	var decoded ErrorReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}

	if !decoded.Detailed {
		t.Error("round trip lost the detailed flag")
	}
	if decoded.Summary.Database != 1 {
		t.Errorf("Summary.Database = %d, want 1", decoded.Summary.Database)
	}
	if decoded.DurationMS != 42 {
		t.Errorf("DurationMS = %d, want 42", decoded.DurationMS)
	}
}

func TestErrorReport_UnmarshalLeadingWhitespace(t *testing.T) {
	var report ErrorReport
	if err := json.Unmarshal([]byte("\n  []"), &report); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if report.Detailed {
		t.Error("whitespace-prefixed array should still parse as legacy")
	}
}
