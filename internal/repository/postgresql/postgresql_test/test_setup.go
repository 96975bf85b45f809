package postgresqltest

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
)

// TestDatabaseSetup wraps a connection to the integration test database
type TestDatabaseSetup struct {
	DB *database.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS developer_calendars (
	id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	developer_id uuid NOT NULL UNIQUE,
	working_days smallint[] NOT NULL,
	start_time time NOT NULL,
	end_time time NOT NULL,
	saturday_start_time time,
	saturday_end_time time,
	timezone text NOT NULL,
	created_at timestamptz NOT NULL DEFAULT NOW(),
	updated_at timestamptz NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS developer_leaves (
	id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	developer_id uuid NOT NULL,
	start_at timestamptz NOT NULL,
	end_at timestamptz NOT NULL,
	reason text,
	status text NOT NULL,
	created_at timestamptz NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS tasks (
	id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	title text NOT NULL,
	assignee_id uuid NOT NULL,
	deadline timestamptz NOT NULL,
	status text NOT NULL,
	assigned_at timestamptz NOT NULL,
	acknowledged_at timestamptz,
	is_delayed boolean NOT NULL DEFAULT false,
	delayed_at timestamptz,
	created_at timestamptz NOT NULL DEFAULT NOW(),
	updated_at timestamptz NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS notifications (
	id uuid PRIMARY KEY,
	recipient_id uuid NOT NULL,
	type text NOT NULL,
	title text NOT NULL,
	message text NOT NULL,
	data jsonb,
	is_read boolean NOT NULL DEFAULT false,
	created_at timestamptz NOT NULL
);
`

// NewTestDatabase connects to TEST_DATABASE_URL and creates the schema.
// The test is skipped when the variable is not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping repository integration test")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	if _, err := db.Exec(ctx, schema); err != nil {
		db.Close()
		t.Fatalf("failed to create schema: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes every row from the test tables
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"developer_calendars",
		"developer_leaves",
		"tasks",
		"notifications",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the database connection
func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}
