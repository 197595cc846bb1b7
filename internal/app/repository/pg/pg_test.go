package pg

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.ErrorContains(t, err, "empty")
}

// TestOpen_Integration needs a reachable server in POSTGRES_TEST_URL
func TestOpen_Integration(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_URL")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}

	db, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	defer db.Close()
	assert.NoError(t, db.Ping())
}
