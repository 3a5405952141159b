package di

import (
	"github.com/Dumorro/e-nvites/internal/handler"
	"github.com/Dumorro/e-nvites/internal/mail"
	"github.com/Dumorro/e-nvites/internal/repository"
	"github.com/Dumorro/e-nvites/internal/service"
	"github.com/Dumorro/e-nvites/pkg/config"
	"github.com/Dumorro/e-nvites/pkg/database"
	"github.com/Dumorro/e-nvites/pkg/logger"
)

// Container holds all dependencies for the RSVP service. Everything is
// constructor-injected; there are no ambient singletons.
type Container struct {
	// Infrastructure
	DB        *database.PostgresDB
	Transport mail.Transport

	// Repositories
	EventRepo     repository.EventRepository
	GuestRepo     repository.GuestRepository
	ImportLogRepo repository.ImportLogRepository
	EmailLogRepo  repository.EmailLogRepository

	// Services
	MailerService    service.MailerService
	RSVPService      service.RSVPService
	GuestListService service.GuestListService
	ImporterService  service.ImporterService
	InviteService    service.InviteService

	// Handlers
	RSVPHandler   *handler.RSVPHandler
	AdminHandler  *handler.AdminHandler
	HealthHandler *handler.HealthHandler
}

// NewContainer creates a new dependency injection container. The mail
// transport is a parameter so tests and local runs can stub the relay.
func NewContainer(cfg *config.Config, db *database.PostgresDB, transport mail.Transport, log *logger.Logger) *Container {
	c := &Container{
		DB:        db,
		Transport: transport,
	}

	pool := db.Pool()
	c.EventRepo = repository.NewPostgresEventRepository(pool)
	c.GuestRepo = repository.NewPostgresGuestRepository(pool)
	c.ImportLogRepo = repository.NewPostgresImportLogRepository(pool)
	c.EmailLogRepo = repository.NewPostgresEmailLogRepository(pool)

	c.MailerService = service.NewMailerService(transport, c.EmailLogRepo, service.MailerConfig{
		Sender:     cfg.SMTP.Sender,
		FromName:   cfg.SMTP.FromName,
		SiteURL:    cfg.Site.URL,
		InvitesDir: cfg.Site.InvitesDir,
		MaxRetries: cfg.SMTP.MaxRetries,
		RetryDelay: cfg.SMTP.RetryDelay,
	}, log)
	c.RSVPService = service.NewRSVPService(c.GuestRepo, c.EventRepo, c.MailerService, log)
	c.GuestListService = service.NewGuestListService(c.GuestRepo, c.EventRepo, c.ImportLogRepo)
	c.ImporterService = service.NewImporterService(c.EventRepo, c.GuestRepo, c.ImportLogRepo, log)
	c.InviteService = service.NewInviteService(c.EventRepo, c.GuestRepo, cfg.Site.InvitesDir, log)

	c.RSVPHandler = handler.NewRSVPHandler(c.RSVPService, c.InviteService)
	c.AdminHandler = handler.NewAdminHandler(c.GuestListService, c.ImporterService, c.InviteService, c.RSVPService)
	c.HealthHandler = handler.NewHealthHandler(db)

	return c
}
