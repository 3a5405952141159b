package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Dumorro/e-nvites/internal/dto"
	"github.com/Dumorro/e-nvites/internal/repository"
	"github.com/Dumorro/e-nvites/pkg/logger"
)

var (
	ErrNotAZip       = errors.New("file is not a zip archive")
	ErrImageNotFound = errors.New("invite image not found")
)

// ImageSource tells callers where an invite image was resolved from
const (
	ImageSourceDatabase   = "database"
	ImageSourceFilesystem = "filesystem"
)

// InviteService stores and serves per-guest invite images
type InviteService interface {
	// UploadInvites walks a ZIP of invite images named {qrCode}-{slug}.{ext}
	// and stores each as a base64 data URI on the matching guest. Entries
	// that do not match the pattern or have no matching guest are counted
	// and listed, never abort the batch. There is no rollback.
	UploadInvites(ctx context.Context, eventID int64, zipData []byte) (*dto.UploadStats, error)
	// GetGuestImage resolves a guest's invite image, database first, then
	// the filesystem fallback keyed by event slug and invite code.
	GetGuestImage(ctx context.Context, qrCode string, eventID int64) (*dto.GuestImageResponse, error)
}

// inviteService implements InviteService
type inviteService struct {
	eventRepo  repository.EventRepository
	guestRepo  repository.GuestRepository
	invitesDir string
	log        *logger.Logger
}

// NewInviteService creates a new InviteService. invitesDir is the root of
// the filesystem fallback, one subdirectory per event slug.
func NewInviteService(
	eventRepo repository.EventRepository,
	guestRepo repository.GuestRepository,
	invitesDir string,
	log *logger.Logger,
) InviteService {
	return &inviteService{
		eventRepo:  eventRepo,
		guestRepo:  guestRepo,
		invitesDir: invitesDir,
		log:        log,
	}
}

// UploadInvites walks a ZIP of invite images and stores each on its guest
func (s *inviteService) UploadInvites(ctx context.Context, eventID int64, zipData []byte) (*dto.UploadStats, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	reader, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	if err != nil {
		return nil, ErrNotAZip
	}

	namePattern := inviteNamePattern(event.Slug)

	stats := &dto.UploadStats{
		Files:         []string{},
		NotFoundFiles: []string{},
	}

	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}

		fileName := path.Base(entry.Name)
		if strings.HasPrefix(fileName, ".") || strings.Contains(entry.Name, "__MACOSX") {
			continue
		}

		mimeType := mimeFromFilename(fileName)
		if !strings.HasPrefix(mimeType, "image/") {
			continue
		}

		qrCode := extractQRCode(namePattern, fileName)
		if qrCode == "" {
			s.log.Warn("invite filename does not match pattern",
				zap.String("file", fileName), zap.String("slug", event.Slug))
			stats.NotFound++
			stats.NotFoundFiles = append(stats.NotFoundFiles, fileName)
			continue
		}

		guest, err := s.guestRepo.GetByQRCodeAndEvent(ctx, qrCode, eventID)
		if err != nil {
			return nil, err
		}
		if guest == nil {
			s.log.Warn("no guest for invite code",
				zap.String("qr_code", qrCode), zap.Int64("event_id", eventID))
			stats.NotFound++
			stats.NotFoundFiles = append(stats.NotFoundFiles, fileName)
			continue
		}

		data, err := readZipEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to read zip entry %s: %w", fileName, err)
		}

		dataURI := toDataURI(data, mimeType)
		if err := s.guestRepo.UpdateInviteImage(ctx, guest.ID, dataURI); err != nil {
			s.log.Error("failed to store invite image",
				zap.Int64("guest_id", guest.ID), zap.Error(err))
			continue
		}

		stats.Total++
		stats.Updated++
		stats.Files = append(stats.Files, fileName)
	}

	// Pattern misses count toward the processed total as well
	stats.Total += stats.NotFound

	s.log.Info("invite upload finished",
		zap.Int64("event_id", eventID),
		zap.Int("updated", stats.Updated),
		zap.Int("not_found", stats.NotFound),
	)

	return stats, nil
}

// GetGuestImage resolves a guest's invite image
func (s *inviteService) GetGuestImage(ctx context.Context, qrCode string, eventID int64) (*dto.GuestImageResponse, error) {
	dataURI, err := s.guestRepo.GetInviteImage(ctx, qrCode, eventID)
	if err != nil {
		return nil, err
	}
	if dataURI != "" {
		return &dto.GuestImageResponse{Source: ImageSourceDatabase, ImageData: dataURI}, nil
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	for _, ext := range []string{"png", "jpg"} {
		imagePath := filepath.Join(s.invitesDir, event.Slug,
			fmt.Sprintf("%s-%s.%s", qrCode, event.Slug, ext))

		data, err := os.ReadFile(imagePath)
		if err != nil {
			continue
		}

		return &dto.GuestImageResponse{
			Source:    ImageSourceFilesystem,
			ImageData: toDataURI(data, mimeFromFilename(imagePath)),
		}, nil
	}

	return nil, ErrImageNotFound
}

// inviteNamePattern matches {qrCode}-{slug}.{png|jpg|jpeg}, extension
// case-insensitive
func inviteNamePattern(slug string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^([^-]+)-` + regexp.QuoteMeta(slug) + `\.(png|jpg|jpeg)$`)
}

func extractQRCode(pattern *regexp.Regexp, fileName string) string {
	match := pattern.FindStringSubmatch(fileName)
	if match == nil {
		return ""
	}
	return match[1]
}

func mimeFromFilename(name string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

func toDataURI(data []byte, mimeType string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

func readZipEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
