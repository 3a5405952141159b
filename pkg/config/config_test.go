package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"APP_NAME", "APP_ENVIRONMENT", "APP_LOG_LEVEL",
		"SERVER_HOST", "SERVER_PORT",
		"DATABASE_HOST", "DATABASE_PORT", "DATABASE_USER", "DATABASE_PASSWORD", "DATABASE_DBNAME",
		"SMTP_SERVER", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_SENDER",
		"SMTP_MAX_RETRIES", "SMTP_RETRY_DELAY",
		"ADMIN_PASSWORD", "SITE_URL", "SITE_INVITES_DIR",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_PASSWORD", "segredo")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.App.Name != "e-nvites" {
		t.Errorf("App.Name = %q, want %q", cfg.App.Name, "e-nvites")
	}
	if cfg.App.Environment != "development" {
		t.Errorf("App.Environment = %q, want %q", cfg.App.Environment, "development")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, 5432)
	}
	if cfg.Database.MaxConns != 25 {
		t.Errorf("Database.MaxConns = %d, want %d", cfg.Database.MaxConns, 25)
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("SMTP.Port = %d, want %d", cfg.SMTP.Port, 587)
	}
	if cfg.SMTP.MaxRetries != 1 {
		t.Errorf("SMTP.MaxRetries = %d, want %d", cfg.SMTP.MaxRetries, 1)
	}
	if cfg.SMTP.RetryDelay != 2*time.Second {
		t.Errorf("SMTP.RetryDelay = %v, want %v", cfg.SMTP.RetryDelay, 2*time.Second)
	}
	if cfg.Site.URL != "http://localhost:3000" {
		t.Errorf("Site.URL = %q, want localhost default", cfg.Site.URL)
	}
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_PASSWORD", "segredo")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("SMTP_SERVER", "smtp.example.com")
	t.Setenv("SMTP_RETRY_DELAY", "5s")
	t.Setenv("SITE_URL", "https://convites.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "db.internal")
	}
	if cfg.SMTP.Server != "smtp.example.com" {
		t.Errorf("SMTP.Server = %q, want %q", cfg.SMTP.Server, "smtp.example.com")
	}
	if cfg.SMTP.RetryDelay != 5*time.Second {
		t.Errorf("SMTP.RetryDelay = %v, want %v", cfg.SMTP.RetryDelay, 5*time.Second)
	}
	if cfg.Admin.Password != "segredo" {
		t.Errorf("Admin.Password = %q, want %q", cfg.Admin.Password, "segredo")
	}
}

func TestLoad_MissingAdminPassword(t *testing.T) {
	clearEnv(t)

	if _, err := Load(); err == nil {
		t.Error("Load() should fail without ADMIN_PASSWORD")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:      AppConfig{Environment: "development"},
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Host: "localhost", DBName: "envites"},
			Admin:    AdminConfig{Password: "segredo"},
		}
	}

	if err := base().Validate(); err != nil {
		t.Errorf("Validate() failed on valid config: %v", err)
	}

	cfg := base()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject port 0")
	}

	cfg = base()
	cfg.Database.Host = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject empty database host")
	}

	cfg = base()
	cfg.Database.DBName = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject empty database name")
	}

	// SMTP relay is only mandatory in production
	cfg = base()
	cfg.App.Environment = "production"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should require SMTP_SERVER in production")
	}
	cfg.SMTP.Server = "smtp.example.com"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() failed with SMTP server set: %v", err)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "postgres",
		DBName:   "envites",
		SSLMode:  "disable",
	}

	want := "host=localhost port=5432 user=postgres password=postgres dbname=envites sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "production"}}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}

	cfg.App.Environment = "development"
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}
}
