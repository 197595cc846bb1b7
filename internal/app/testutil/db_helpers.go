package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"audioscribe/internal/app/model"
	"audioscribe/internal/app/repository/migrate"
	"audioscribe/internal/app/repository/pg"
	"audioscribe/internal/app/repository/sqldb"
	"audioscribe/internal/app/repository/sqlite"
)

// SetupTestStore returns a migrated store. It uses POSTGRES_TEST_URL when
// set and a private in-memory SQLite database otherwise.
func SetupTestStore(t *testing.T) *sqldb.DB {
	t.Helper()

	if pgURL := os.Getenv("POSTGRES_TEST_URL"); pgURL != "" {
		return SetupTestPostgres(t, pgURL)
	}
	return SetupTestSQLite(t)
}

// SetupTestSQLite creates an in-memory SQLite store
func SetupTestSQLite(t *testing.T) *sqldb.DB {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err, "failed to open SQLite test database")
	require.NoError(t, migrate.Up(ctx, db, sqlite.DriverName), "failed to migrate SQLite test database")

	store := sqldb.New(db, sqldb.SQLite)
	t.Cleanup(func() { store.Close() })
	return store
}

// SetupTestPostgres migrates the database at dsn and truncates all tables
// before and after the test.
func SetupTestPostgres(t *testing.T, dsn string) *sqldb.DB {
	t.Helper()
	ctx := context.Background()

	db, err := pg.Open(ctx, dsn)
	require.NoError(t, err, "failed to connect to PostgreSQL test database")
	require.NoError(t, migrate.Up(ctx, db, pg.DriverName), "failed to migrate PostgreSQL test database")

	truncate := func() {
		_, err := db.Exec(`TRUNCATE usage_logs, subscriptions, transcriptions, profiles`)
		if err != nil {
			t.Logf("Failed to truncate test tables: %v", err)
		}
	}
	truncate()

	store := sqldb.New(db, sqldb.Postgres)
	t.Cleanup(func() {
		truncate()
		store.Close()
	})
	return store
}

// SeedProfile inserts a profile with the given tier and balance
func SeedProfile(t *testing.T, store *sqldb.DB, id string, tier model.Tier, credits int) *model.Profile {
	t.Helper()

	profile := &model.Profile{
		ID:               id,
		Email:            id + "@example.com",
		SubscriptionTier: tier,
		CreditsRemaining: credits,
	}
	require.NoError(t, store.CreateProfile(context.Background(), profile))
	return profile
}

// SeedTranscription inserts a pending job owned by userID
func SeedTranscription(t *testing.T, store *sqldb.DB, userID, id string, createdAt time.Time) *model.Transcription {
	t.Helper()

	transcription := PendingTranscription(userID, id)
	transcription.CreatedAt = createdAt
	require.NoError(t, store.CreateTranscription(context.Background(), transcription))
	return transcription
}
