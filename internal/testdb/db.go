//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/lexis-api/internal/ciutil"
	"github.com/phrazzld/lexis-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// DatabaseURLEnv names an existing database to test against instead of a container.
const DatabaseURLEnv = ciutil.EnvTestDatabaseURL

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// GetTestDBWithT returns a migrated database connection that is closed when
// the test ends. The test is skipped when Docker is unavailable and no
// database URL is configured, except under CI where that is a failure.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	once.Do(func() {
		sharedDSN, initErr = resolveDSN()
		if initErr == nil {
			initErr = migrate(sharedDSN)
		}
	})
	if errors.Is(initErr, errNoDocker) && !ciutil.IsCI() {
		t.Skipf("skipping integration test: %v", initErr)
	}
	require.NoError(t, initErr, "failed to set up test database")

	db, err := sql.Open("pgx", sharedDSN)
	require.NoError(t, err, "failed to open database connection")
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})
	return db
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		// sql.ErrTxDone is expected if tx is already committed or rolled back
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// ResetTables empties every application table. Tests that need committed
// data across transactions call it from t.Cleanup.
func ResetTables(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`TRUNCATE word_sentences, quizzes, words, wordlist_scores, wordlists CASCADE`)
	require.NoError(t, err, "failed to truncate tables")
}

func resolveDSN() (string, error) {
	if url := ciutil.TestDatabaseURL(nil); url != "" {
		return url, nil
	}
	return startContainer()
}

func migrate(dsn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}

	quiet := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return postgres.Migrate(ctx, db, "up", quiet)
}
