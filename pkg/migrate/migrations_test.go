package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tvindima/crm-plus-sub000/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestVisitsMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_visits.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no visits migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE visits",
		"REFERENCES properties(id) ON DELETE CASCADE",
		"REFERENCES leads(id) ON DELETE SET NULL",
		"status TEXT NOT NULL DEFAULT 'scheduled'",
		"DROP TABLE IF EXISTS visits",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCoreTablesMigrationCarriesLockVersion(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_core_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no core tables migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	if got := strings.Count(content, "lock_version BIGINT NOT NULL DEFAULT 0"); got != 2 {
		t.Errorf("expected lock_version on properties and leads, found %d occurrences", got)
	}
}
