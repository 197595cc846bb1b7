// Package testutil provides shared testing utilities for audioscribe.
//
// Database helpers (db_helpers.go) open a migrated store: an in-memory
// SQLite database by default, or the PostgreSQL database named by
// POSTGRES_TEST_URL. Seed helpers insert profiles and jobs.
//
// Mocks (mock_*.go) are testify mocks for the record store, the blob store
// and the transcription engine. Create them with the New* constructors,
// which bind the mock to t so unmet expectations fail the test:
//
//	store := testutil.NewMockStore(t)
//	store.On("GetProfile", mock.Anything, "user-1").Return(testutil.FreeProfile("user-1", 100), nil)
//
// Fixtures (fixtures.go) build profiles, jobs and multipart bodies.
package testutil
