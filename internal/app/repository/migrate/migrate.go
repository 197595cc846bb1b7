package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// schema is shared by both drivers; $TS and $JSON are replaced per driver
var schema = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		full_name TEXT,
		avatar_url TEXT,
		subscription_tier TEXT NOT NULL DEFAULT 'free'
			CHECK (subscription_tier IN ('free', 'pro', 'enterprise')),
		credits_remaining INTEGER NOT NULL DEFAULT 0 CHECK (credits_remaining >= 0),
		created_at $TS NOT NULL,
		updated_at $TS NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transcriptions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		original_filename TEXT NOT NULL,
		file_url TEXT NOT NULL,
		storage_key TEXT NOT NULL,
		file_size_bytes BIGINT NOT NULL,
		content_type TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'processing', 'completed', 'failed')),
		duration_seconds DOUBLE PRECISION,
		language TEXT,
		transcript_text TEXT,
		failure_reason TEXT,
		confidence_score DOUBLE PRECISION,
		created_at $TS NOT NULL,
		updated_at $TS NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transcriptions_user_created
		ON transcriptions (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS subscriptions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		stripe_subscription_id TEXT,
		stripe_customer_id TEXT,
		status TEXT NOT NULL CHECK (status IN ('active', 'canceled', 'incomplete', 'past_due')),
		price_id TEXT NOT NULL,
		current_period_start $TS NOT NULL,
		current_period_end $TS NOT NULL,
		created_at $TS NOT NULL,
		updated_at $TS NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS usage_logs (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		transcription_id TEXT REFERENCES transcriptions(id) ON DELETE SET NULL,
		action TEXT NOT NULL CHECK (action IN ('transcription', 'api_call')),
		credits_used INTEGER NOT NULL,
		metadata $JSON,
		created_at $TS NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_usage_logs_user_created
		ON usage_logs (user_id, created_at DESC)`,
}

// Statements returns the schema DDL for driver ("postgres" or "sqlite3").
func Statements(driver string) ([]string, error) {
	var r *strings.Replacer
	switch driver {
	case "postgres":
		r = strings.NewReplacer("$TS", "TIMESTAMPTZ", "$JSON", "JSONB")
	case "sqlite3":
		// go-sqlite3 only parses time columns declared as timestamp/datetime/date
		r = strings.NewReplacer("$TS", "TIMESTAMP", "$JSON", "TEXT")
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	out := make([]string, len(schema))
	for i, stmt := range schema {
		out[i] = r.Replace(stmt)
	}
	return out, nil
}

// Up creates all tables and indexes that do not exist yet.
func Up(ctx context.Context, db *sql.DB, driver string) error {
	stmts, err := Statements(driver)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	return nil
}
