package implementations

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMigrationsSortsAndFiltersSQLFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"0002_seed.sql":   "INSERT INTO x VALUES (1);",
		"0001_schema.SQL": "CREATE TABLE x (id INT);",
		"README.md":       "ignored",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatalf("expected fixture to be written, got %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "archive.sql"), 0o700); err != nil {
		t.Fatalf("expected fixture dir, got %v", err)
	}

	migrations, err := loadMigrations(dir)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].version != "0001_schema.SQL" || migrations[1].version != "0002_seed.sql" {
		t.Fatalf("expected lexical order, got %s then %s", migrations[0].version, migrations[1].version)
	}
	if len(migrations[0].checksum) != 64 {
		t.Fatalf("expected sha256 hex checksum, got %q", migrations[0].checksum)
	}
}

func TestLoadMigrationsShipsLedgerSchema(t *testing.T) {
	migrations, err := loadMigrations(filepath.Join("..", "..", "..", "..", "migrations"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(migrations) < 2 || migrations[0].version != "0001_ledger_schema.sql" {
		t.Fatalf("expected ledger schema first, got %+v", migrations)
	}
}

func TestLoadMigrationsMissingDirectory(t *testing.T) {
	if _, err := loadMigrations(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
