package testutil

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	"audioscribe/internal/app/api"
)

// MockTranscriber is a testify mock of api.Transcriber that also records
// the audio it was sent.
type MockTranscriber struct {
	mock.Mock
	mu sync.Mutex

	// CallHistory holds one entry per Transcribe call
	CallHistory []TranscriptionCall
}

// TranscriptionCall represents a single transcription call for tracking
type TranscriptionCall struct {
	Filename string
	Language string
	Prompt   string
	Audio    []byte
}

var _ api.Transcriber = (*MockTranscriber)(nil)

// NewMockTranscriber creates a MockTranscriber whose expectations are asserted when t ends
func NewMockTranscriber(t *testing.T) *MockTranscriber {
	m := &MockTranscriber{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Transcribe implements the api.Transcriber interface. The mock is matched
// on (ctx, req) with req.Audio cleared.
func (m *MockTranscriber) Transcribe(ctx context.Context, req api.TranscriptionRequest) (*api.TranscriptionResult, error) {
	var audio []byte
	if req.Audio != nil {
		audio, _ = io.ReadAll(req.Audio)
	}

	m.mu.Lock()
	m.CallHistory = append(m.CallHistory, TranscriptionCall{
		Filename: req.Filename,
		Language: req.Language,
		Prompt:   req.Prompt,
		Audio:    audio,
	})
	m.mu.Unlock()

	req.Audio = nil
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.TranscriptionResult), args.Error(1)
}

// ExpectTranscribe sets up a one-time expectation for any request
func (m *MockTranscriber) ExpectTranscribe(result *api.TranscriptionResult, err error) *MockTranscriber {
	m.On("Transcribe", mock.Anything, mock.Anything).Return(result, err).Once()
	return m
}

// GetCallCount returns the total number of calls made
func (m *MockTranscriber) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.CallHistory)
}

// GetLastCall returns the last transcription call
func (m *MockTranscriber) GetLastCall() *TranscriptionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.CallHistory) == 0 {
		return nil
	}
	call := m.CallHistory[len(m.CallHistory)-1]
	return &call
}
