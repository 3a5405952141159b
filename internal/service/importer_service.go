package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Dumorro/e-nvites/internal/domain"
	"github.com/Dumorro/e-nvites/internal/dto"
	"github.com/Dumorro/e-nvites/internal/repository"
	"github.com/Dumorro/e-nvites/pkg/logger"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrEmptyCSV      = errors.New("csv file is empty or contains only a header")
)

// ImporterService bulk-imports guests from CSV files
type ImporterService interface {
	// ImportGuests parses and imports one CSV file for an event. Row-level
	// errors never abort the batch; they are accumulated and reported in the
	// returned stats. An ImportLog row is always recorded, best-effort.
	ImportGuests(ctx context.Context, eventID int64, filename string, file io.Reader) (*dto.ImportStats, error)
}

// importerService implements ImporterService
type importerService struct {
	eventRepo     repository.EventRepository
	guestRepo     repository.GuestRepository
	importLogRepo repository.ImportLogRepository
	log           *logger.Logger
}

// NewImporterService creates a new ImporterService
func NewImporterService(
	eventRepo repository.EventRepository,
	guestRepo repository.GuestRepository,
	importLogRepo repository.ImportLogRepository,
	log *logger.Logger,
) ImporterService {
	return &importerService{
		eventRepo:     eventRepo,
		guestRepo:     guestRepo,
		importLogRepo: importLogRepo,
		log:           log,
	}
}

// ImportGuests parses and imports one CSV file for an event
func (s *importerService) ImportGuests(ctx context.Context, eventID int64, filename string, file io.Reader) (*dto.ImportStats, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv file: %w", err)
	}

	lines := nonBlankLines(string(content))
	if len(lines) <= 1 {
		return nil, ErrEmptyCSV
	}

	start := time.Now()

	// Header is line 1; data rows keep their file line numbers in errors
	guests, importErrors := s.parseRows(lines[1:], eventID)
	totalRows := len(lines) - 1

	s.log.Info("importing guests",
		zap.Int64("event_id", eventID),
		zap.String("filename", filename),
		zap.Int("total_rows", totalRows),
		zap.Int("valid_rows", len(guests)),
	)

	inserted := 0
	status := domain.ImportCompleted

	if len(guests) > 0 {
		inserted, err = s.guestRepo.BulkInsert(ctx, guests)
		if err != nil {
			status = domain.ImportFailed
			importErrors = append(importErrors, classifyInsertError(err))
			s.log.Error("bulk insert failed", zap.Int64("event_id", eventID), zap.Error(err))
		}
	}

	if status != domain.ImportFailed && len(importErrors) > 0 {
		status = domain.ImportPartial
	}

	duration := time.Since(start)

	// Errors is derived so that totalRows = inserted + errors even when one
	// bulk failure rejects many rows at once
	stats := &dto.ImportStats{
		TotalRows:    totalRows,
		Inserted:     inserted,
		Errors:       totalRows - inserted,
		ErrorDetails: importErrors,
		Status:       status,
		DurationMS:   duration.Milliseconds(),
	}

	s.recordImportLog(ctx, eventID, filename, stats, duration)

	return stats, nil
}

// parseRows validates data rows and builds the insert batch. rows[i] is file
// line i+2 (1-based, after the header).
func (s *importerService) parseRows(rows []string, eventID int64) ([]*domain.Guest, []domain.ImportError) {
	guests := make([]*domain.Guest, 0, len(rows))
	importErrors := []domain.ImportError{}

	for i, line := range rows {
		lineNo := i + 2

		values := splitCSVLine(line)
		if len(values) < 4 {
			importErrors = append(importErrors, domain.ImportError{
				Row:     lineNo,
				Type:    domain.ImportErrorParse,
				Message: fmt.Sprintf("Linha com menos de 4 colunas (encontradas: %d)", len(values)),
			})
			continue
		}

		qrCode, name, email, phone := values[0], values[1], values[2], values[3]

		if qrCode == "" || name == "" {
			importErrors = append(importErrors, domain.ImportError{
				Row:     lineNo,
				Type:    domain.ImportErrorValidation,
				Message: "QR Code e Nome são obrigatórios",
			})
			continue
		}

		if email != "" && !isValidEmail(email) {
			importErrors = append(importErrors, domain.ImportError{
				Row:     lineNo,
				Type:    domain.ImportErrorValidation,
				Message: fmt.Sprintf("Email inválido: %s", email),
			})
			continue
		}

		guests = append(guests, &domain.Guest{
			GUID:    uuid.New().String(),
			QRCode:  qrCode,
			Name:    name,
			Email:   strings.ToLower(email),
			Phone:   normalizePhone(phone),
			EventID: eventID,
			Status:  domain.StatusPending,
		})
	}

	return guests, importErrors
}

// recordImportLog persists the audit record. Failure to log never fails the
// import itself.
func (s *importerService) recordImportLog(ctx context.Context, eventID int64, filename string, stats *dto.ImportStats, duration time.Duration) {
	log := &domain.ImportLog{
		EventID:     eventID,
		Filename:    filename,
		TotalRows:   stats.TotalRows,
		Inserted:    stats.Inserted,
		ErrorCount:  stats.Errors,
		ErrorReport: domain.NewErrorReport(stats.ErrorDetails, duration),
		Status:      stats.Status,
	}
	if err := s.importLogRepo.Create(ctx, log); err != nil {
		s.log.Warn("failed to record import log",
			zap.Int64("event_id", eventID),
			zap.String("filename", filename),
			zap.Error(err),
		)
	}
}

// classifyInsertError maps a bulk-insert failure to an import error entry.
// Conflict errors carry the localized duplicate message for the offending
// field; anything else is a database error.
func classifyInsertError(err error) domain.ImportError {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return domain.ImportError{
			Row:     0,
			Type:    domain.ImportErrorDuplicate,
			Message: conflict.LocalizedMessage(),
		}
	}
	return domain.ImportError{
		Row:     0,
		Type:    domain.ImportErrorDatabase,
		Message: fmt.Sprintf("Erro no banco: %v", err),
	}
}

func nonBlankLines(content string) []string {
	raw := strings.Split(content, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
