package testutil

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"

	"audioscribe/internal/app/storage"
)

// MockBlobStore is a testify mock of storage.BlobStore. Put drains the
// reader so callers see the same behaviour as a real upload.
type MockBlobStore struct {
	mock.Mock
}

var _ storage.BlobStore = (*MockBlobStore)(nil)

// NewMockBlobStore creates a MockBlobStore whose expectations are asserted when t ends
func NewMockBlobStore(t *testing.T) *MockBlobStore {
	m := &MockBlobStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBlobStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, _ = io.Copy(io.Discard, r)
	return m.Called(ctx, key, r, size, contentType).Error(0)
}

func (m *MockBlobStore) URL(key string) string {
	return "http://blob.test/" + key
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
