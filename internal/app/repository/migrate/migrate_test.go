package migrate

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatements(t *testing.T) {
	pg, err := Statements("postgres")
	require.NoError(t, err)
	require.Len(t, pg, len(schema))
	assert.Contains(t, pg[0], "TIMESTAMPTZ")
	assert.Contains(t, pg[4], "JSONB")

	lite, err := Statements("sqlite3")
	require.NoError(t, err)
	assert.NotContains(t, lite[0], "TIMESTAMPTZ")
	assert.Contains(t, lite[4], "metadata TEXT")

	_, err = Statements("mysql")
	assert.ErrorContains(t, err, "unsupported")
}

func TestUp_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite3", "file::memory:?cache=private")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	require.NoError(t, Up(ctx, db, "sqlite3"))
	// idempotent
	require.NoError(t, Up(ctx, db, "sqlite3"))

	for _, table := range []string{"profiles", "transcriptions", "subscriptions", "usage_logs"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestUp_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS profiles").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS transcriptions").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err = Up(context.Background(), db, "postgres")
	assert.ErrorContains(t, err, "migration statement 2 failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
