package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stockroomhq/stockroom-backend/pkg/migrate"
)

func TestMigrationDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestInitialSchemaContainsCoreTables(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_initial_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no initial schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE inventory_items",
		"CREATE TABLE changelog_entries",
		"REFERENCES inventory_items (id) ON DELETE CASCADE",
		"REFERENCES users (id) ON DELETE SET NULL",
		"CREATE UNIQUE INDEX idx_inventory_items_name",
		"CREATE UNIQUE INDEX idx_orders_order_number",
		"DROP TABLE IF EXISTS changelog_entries",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
