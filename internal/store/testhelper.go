package store

import (
	"context"
	"fmt"
	"os"
	"testing"

	"referral-server/internal/observability"

	"github.com/jmoiron/sqlx"
)

// TestDB wraps a migrated test database instance
type TestDB struct {
	db    *sqlx.DB
	Store Store
}

// SetupTestDB connects to the PostgreSQL instance described by the TEST_DB_*
// variables and applies the embedded migrations. The test is skipped when no
// database is reachable.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	db, err := setupPostgresDB(t)
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}

	store := Store{db: db, logger: observability.NewNopLogger()}
	if err := store.ApplyMigrations(context.Background()); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	return &TestDB{db: db, Store: store}
}

// setupPostgresDB opens and pings the test database
func setupPostgresDB(t *testing.T) (*sqlx.DB, error) {
	t.Helper()

	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		connStr = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			getEnv("TEST_DB_USER", "referral_user"),
			getEnv("TEST_DB_PASSWORD", "referral_password"),
			getEnv("TEST_DB_HOST", "localhost"),
			getEnv("TEST_DB_PORT", "5432"),
			getEnv("TEST_DB_NAME", "referral_db"))
	}

	db, err := sqlx.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db, nil
}

// Truncate clears the referrals table
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()
	if _, err := tdb.db.Exec("TRUNCATE TABLE referrals"); err != nil {
		t.Fatalf("failed to truncate referrals: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
