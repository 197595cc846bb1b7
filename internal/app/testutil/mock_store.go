package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"audioscribe/internal/app/model"
	"audioscribe/internal/app/repository"
)

// MockStore is a testify mock of repository.Store
type MockStore struct {
	mock.Mock
}

var _ repository.Store = (*MockStore)(nil)

// NewMockStore creates a MockStore whose expectations are asserted when t ends
func NewMockStore(t *testing.T) *MockStore {
	m := &MockStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockStore) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockStore) CreateProfile(ctx context.Context, profile *model.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockStore) CreateTranscription(ctx context.Context, t *model.Transcription) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockStore) GetTranscription(ctx context.Context, userID, id string) (*model.Transcription, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transcription), args.Error(1)
}

func (m *MockStore) ListTranscriptions(ctx context.Context, params repository.ListTranscriptionsParams) ([]model.Transcription, int, error) {
	args := m.Called(ctx, params)
	var ts []model.Transcription
	if args.Get(0) != nil {
		ts = args.Get(0).([]model.Transcription)
	}
	return ts, args.Int(1), args.Error(2)
}

func (m *MockStore) ClaimTranscription(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockStore) FailTranscription(ctx context.Context, userID, id, reason string) error {
	return m.Called(ctx, userID, id, reason).Error(0)
}

func (m *MockStore) SettleTranscription(ctx context.Context, s repository.Settlement) (int, error) {
	args := m.Called(ctx, s)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) ListUsageLogs(ctx context.Context, userID string, limit int) ([]model.UsageLog, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UsageLog), args.Error(1)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}
