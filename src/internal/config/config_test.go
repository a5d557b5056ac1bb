package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if cfg.StorageDriver != StorageDriverPostgres {
		t.Fatalf("expected storage driver %q, got %q", StorageDriverPostgres, cfg.StorageDriver)
	}
	if cfg.LateFeeGraceDays != 90 {
		t.Fatalf("expected grace days 90, got %d", cfg.LateFeeGraceDays)
	}
	if cfg.PaymentTolerance.String() != "50" {
		t.Fatalf("expected tolerance 50, got %s", cfg.PaymentTolerance.String())
	}
	if cfg.DailyLateRate.String() != "0.0275" {
		t.Fatalf("expected daily late rate 0.0275, got %s", cfg.DailyLateRate.String())
	}
	if cfg.DatabaseDSN != "host=localhost port=5432 dbname=inmobiliaria_db user=postgres password=postgres connect_timeout=30 statement_timeout=30s sslmode=disable" {
		t.Fatalf("unexpected normalized dsn %q", cfg.DatabaseDSN)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("LATE_FEE_GRACE_DAYS", "60")
	t.Setenv("PAYMENT_TOLERANCE", "100")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://backoffice.example.com, http://localhost:3000")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if cfg.StorageDriver != StorageDriverMemory {
		t.Fatalf("expected storage driver %q, got %q", StorageDriverMemory, cfg.StorageDriver)
	}
	if cfg.LateFeeGraceDays != 60 {
		t.Fatalf("expected grace days 60, got %d", cfg.LateFeeGraceDays)
	}
	if cfg.PaymentTolerance.String() != "100" {
		t.Fatalf("expected tolerance 100, got %s", cfg.PaymentTolerance.String())
	}
	origins := cfg.AllowedOrigins()
	if len(origins) != 2 || origins[1] != "http://localhost:3000" {
		t.Fatalf("unexpected allowed origins %v", origins)
	}
}

func TestLoadReadsDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "OVERDUE_JOB_SCHEDULE=30 2 * * *\nLEDGER_EVENT_EXCHANGE=backoffice_events\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("OVERDUE_JOB_SCHEDULE")
		os.Unsetenv("LEDGER_EVENT_EXCHANGE")
	})

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if cfg.OverdueJobSchedule != "30 2 * * *" {
		t.Fatalf("expected schedule from .env, got %q", cfg.OverdueJobSchedule)
	}
	if cfg.LedgerEventExchange != "backoffice_events" {
		t.Fatalf("expected exchange from .env, got %q", cfg.LedgerEventExchange)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mysql")
	t.Setenv("PAYMENT_TOLERANCE", "-1")

	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected validation error for invalid storage driver and tolerance")
	}
}

func TestNormalizeConnectionStringKeepsURL(t *testing.T) {
	raw := "postgres://user:pass@db:5432/ledger?sslmode=require"
	if got := normalizeConnectionString(raw); got != raw {
		t.Fatalf("expected url to be kept, got %q", got)
	}
}
