package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/pkg/database"
)

var (
	setupOnce sync.Once
	testDB    *database.DB
	setupErr  error
)

// tables in dependency order, truncated together with CASCADE.
var tables = []string{
	"correction_approvals",
	"punch_corrections",
	"punches",
	"daily_timesheets",
	"payroll_summaries",
	"shift_assignments",
	"shift_templates",
	"overtime_rules",
	"holidays",
	"employees",
}

// newTestDB connects to TEST_DATABASE_URL, applies migrations once and empties every table.
// Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	setupOnce.Do(func() {
		ctx := context.Background()
		testDB, setupErr = database.NewPostgreSQLDB(ctx, dsn, database.Options{MaxConns: 10, QueryTimeout: 5 * time.Second})
		if setupErr != nil {
			return
		}
		_, setupErr = database.Migrate(ctx, testDB)
	})
	if setupErr != nil {
		t.Fatalf("failed to set up test database: %v", setupErr)
	}

	if err := truncateAll(context.Background(), testDB); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	return testDB
}

func truncateAll(ctx context.Context, db *database.DB) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return tx.Commit(ctx)
}
