package migrate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lacomanda/comanda-backend/pkg/migrate"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	require.NoError(t, err)
	require.NotEmpty(t, matches, "no migration matches %s", pattern)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	return string(data)
}

func TestOrderTablesMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_order_flow_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE",
		"uq_orders_location_number",
		"CHECK (quantity > 0)",
		"DROP TABLE IF EXISTS orders",
	}
	for _, sub := range checks {
		assert.Contains(t, content, sub)
	}
}

func TestOrderEventsMigrationIsAppendOnly(t *testing.T) {
	content := readMigration(t, "*_create_order_events.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS order_events",
		"BEFORE UPDATE OR DELETE ON order_events",
		"CHECK (actor IN ('kds', 'pos'))",
		"DROP TABLE IF EXISTS order_events",
	}
	for _, sub := range checks {
		assert.Contains(t, content, sub)
	}
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	require.NoError(t, migrate.ValidateDir("migrations"))
}
