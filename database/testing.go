package database

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testDB *DB

// contentTables lists every table the integration tests write to.
var contentTables = []string{
	"projects", "skills", "contacts", "experiences", "education", "admins", "cv_documents",
}

// RequireTestDB returns the shared connection, skipping t in -short mode.
func RequireTestDB(t *testing.T) *DB {
	t.Helper()
	if testing.Short() || testDB == nil {
		t.Skip("integration test: needs TEST_DATABASE_URL")
	}
	return testDB
}

// SetupTestDB connects and applies the embedded migrations.
func SetupTestDB(dbURL string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL, zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// CleanupTestDB empties every content table.
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	_, err := db.Pool.Exec(context.Background(),
		"TRUNCATE TABLE "+strings.Join(contentTables, ", ")+" CASCADE")
	require.NoError(t, err)
}

func TeardownTestDB(db *DB) {
	if db != nil {
		db.Close()
	}
}
