package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apierrors "audioscribe/internal/api/errors"
	"audioscribe/internal/api/v1/dto"
	"audioscribe/internal/app/api"
	"audioscribe/internal/app/metrics"
	"audioscribe/internal/app/model"
	"audioscribe/internal/app/plans"
	"audioscribe/internal/app/repository"
	"audioscribe/internal/app/testutil"
)

type transcribeFixture struct {
	store       *testutil.MockStore
	transcriber *testutil.MockTranscriber
	service     TranscriptionService
}

func newTranscribeFixture(t *testing.T) *transcribeFixture {
	store := testutil.NewMockStore(t)
	transcriber := testutil.NewMockTranscriber(t)
	return &transcribeFixture{
		store:       store,
		transcriber: transcriber,
		service:     NewTranscriptionService(store, transcriber, plans.Default(), metrics.New(), zap.NewNop()),
	}
}

func audioUpload(content string) dto.AudioFile {
	return dto.AudioFile{
		Filename:    "meeting.mp3",
		ContentType: "audio/mpeg",
		Size:        int64(len(content)),
		Content:     strings.NewReader(content),
	}
}

func TestTranscribe_SettlesCost(t *testing.T) {
	store := testutil.SetupTestSQLite(t)
	testutil.SeedProfile(t, store, "user-1", model.TierFree, 10)
	testutil.SeedTranscription(t, store, "user-1", "t1", time.Now().UTC())

	transcriber := testutil.NewMockTranscriber(t)
	transcriber.ExpectTranscribe(&api.TranscriptionResult{Text: "hello world", Duration: 150, Language: "en"}, nil)

	service := NewTranscriptionService(store, transcriber, plans.Default(), metrics.New(), zap.NewNop())
	ctx := context.Background()

	resp, err := service.Transcribe(ctx, "user-1", dto.TranscribeRequest{TranscriptionID: "t1"}, audioUpload("RIFFDATA"))
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "hello world", resp.Transcription.Text)
	assert.Equal(t, 150.0, resp.Transcription.Duration)
	assert.Equal(t, "en", resp.Transcription.Language)
	assert.Equal(t, 3, resp.CreditsUsed)
	assert.Equal(t, 7, resp.CreditsRemaining)

	profile, err := store.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 7, profile.CreditsRemaining)

	job, err := store.GetTranscription(ctx, "user-1", "t1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, job.Status)
	require.NotNil(t, job.TranscriptText)
	assert.Equal(t, "hello world", *job.TranscriptText)
	require.NotNil(t, job.ConfidenceScore)
	assert.Equal(t, model.DefaultConfidenceScore, *job.ConfidenceScore)

	logs, err := store.ListUsageLogs(ctx, "user-1", 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 3, logs[0].CreditsUsed)
	assert.Equal(t, model.ActionTranscription, logs[0].Action)
	assert.Equal(t, "en", logs[0].Metadata["language"])

	call := transcriber.GetLastCall()
	require.NotNil(t, call)
	assert.Equal(t, "meeting.mp3", call.Filename)
	assert.Equal(t, plans.AutoLanguage, call.Language)
	assert.Equal(t, []byte("RIFFDATA"), call.Audio)
}

func TestTranscribe_SecondCallIsRejected(t *testing.T) {
	store := testutil.SetupTestSQLite(t)
	testutil.SeedProfile(t, store, "user-1", model.TierFree, 10)
	testutil.SeedTranscription(t, store, "user-1", "t1", time.Now().UTC())

	transcriber := testutil.NewMockTranscriber(t)
	transcriber.ExpectTranscribe(&api.TranscriptionResult{Text: "once", Duration: 30, Language: "en"}, nil)

	service := NewTranscriptionService(store, transcriber, plans.Default(), metrics.New(), zap.NewNop())
	ctx := context.Background()
	req := dto.TranscribeRequest{TranscriptionID: "t1"}

	_, err := service.Transcribe(ctx, "user-1", req, audioUpload("a"))
	require.NoError(t, err)

	_, err = service.Transcribe(ctx, "user-1", req, audioUpload("a"))
	apiErr := requireAPIError(t, err, http.StatusConflict)
	assert.Equal(t, "completed", apiErr.Details["status"])

	profile, err := store.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 9, profile.CreditsRemaining)
	assert.Equal(t, 1, transcriber.GetCallCount())
}

func TestTranscribe_CostAboveBalanceFailsJob(t *testing.T) {
	store := testutil.SetupTestSQLite(t)
	testutil.SeedProfile(t, store, "user-1", model.TierFree, 2)
	testutil.SeedTranscription(t, store, "user-1", "t1", time.Now().UTC())

	transcriber := testutil.NewMockTranscriber(t)
	transcriber.ExpectTranscribe(&api.TranscriptionResult{Text: "long", Duration: 300, Language: "en"}, nil)

	service := NewTranscriptionService(store, transcriber, plans.Default(), metrics.New(), zap.NewNop())
	ctx := context.Background()

	_, err := service.Transcribe(ctx, "user-1", dto.TranscribeRequest{TranscriptionID: "t1"}, audioUpload("a"))
	apiErr := requireAPIError(t, err, http.StatusPaymentRequired)
	assert.Equal(t, apierrors.CodeInsufficientCredits, apiErr.Code)
	assert.Equal(t, 5, apiErr.Details["creditsNeeded"])
	assert.Equal(t, 2, apiErr.Details["creditsRemaining"])

	profile, err := store.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, profile.CreditsRemaining)

	job, err := store.GetTranscription(ctx, "user-1", "t1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, job.Status)
	require.NotNil(t, job.FailureReason)
	assert.Equal(t, model.ReasonInsufficientCredits, *job.FailureReason)
	assert.Nil(t, job.TranscriptText)

	logs, err := store.ListUsageLogs(ctx, "user-1", 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestTranscribe_EmptyBalanceSkipsEngine(t *testing.T) {
	f := newTranscribeFixture(t)
	ctx := context.Background()

	f.store.On("GetProfile", ctx, "user-1").Return(testutil.FreeProfile("user-1", 0), nil)
	f.store.On("ClaimTranscription", ctx, "user-1", "t1").Return(nil)
	f.store.On("FailTranscription", mock.Anything, "user-1", "t1", model.ReasonInsufficientCredits).Return(nil)

	_, err := f.service.Transcribe(ctx, "user-1", dto.TranscribeRequest{TranscriptionID: "t1"}, audioUpload("a"))
	requireAPIError(t, err, http.StatusPaymentRequired)

	assert.Equal(t, 0, f.transcriber.GetCallCount())
	f.store.AssertNotCalled(t, "SettleTranscription", mock.Anything, mock.Anything)
}

func TestTranscribe_EngineFailureFailsJob(t *testing.T) {
	f := newTranscribeFixture(t)
	ctx := context.Background()

	f.store.On("GetProfile", ctx, "user-1").Return(testutil.FreeProfile("user-1", 10), nil)
	f.store.On("ClaimTranscription", ctx, "user-1", "t1").Return(nil)
	f.store.On("FailTranscription", mock.Anything, "user-1", "t1", model.ReasonTranscriptionFailed).Return(nil)
	f.transcriber.ExpectTranscribe(nil, errors.New("status code: 503"))

	_, err := f.service.Transcribe(ctx, "user-1", dto.TranscribeRequest{TranscriptionID: "t1"}, audioUpload("a"))
	apiErr := requireAPIError(t, err, http.StatusInternalServerError)
	assert.Equal(t, apierrors.CodeTranscriptionFailed, apiErr.Code)
	assert.Equal(t, "status code: 503", apiErr.Details["error"])
	f.store.AssertNotCalled(t, "SettleTranscription", mock.Anything, mock.Anything)
}

func TestTranscribe_FailureSurvivesCancelledContext(t *testing.T) {
	f := newTranscribeFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	f.store.On("GetProfile", ctx, "user-1").Return(testutil.FreeProfile("user-1", 10), nil)
	f.store.On("ClaimTranscription", ctx, "user-1", "t1").Return(nil)
	f.store.On("FailTranscription", mock.MatchedBy(func(c context.Context) bool {
		return c.Err() == nil
	}), "user-1", "t1", model.ReasonTranscriptionFailed).Return(nil)
	f.transcriber.On("Transcribe", ctx, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, context.Canceled)

	_, err := f.service.Transcribe(ctx, "user-1", dto.TranscribeRequest{TranscriptionID: "t1"}, audioUpload("a"))
	requireAPIError(t, err, http.StatusInternalServerError)
}

func TestTranscribe_PassesLanguageAndPrompt(t *testing.T) {
	f := newTranscribeFixture(t)
	ctx := context.Background()

	f.store.On("GetProfile", ctx, "user-1").Return(testutil.FreeProfile("user-1", 10), nil)
	f.store.On("ClaimTranscription", ctx, "user-1", "t1").Return(nil)
	f.transcriber.On("Transcribe", ctx, api.TranscriptionRequest{
		Filename: "meeting.mp3",
		Language: "fr",
		Prompt:   "Quarterly numbers",
	}).Return(&api.TranscriptionResult{Text: "bonjour", Duration: 61, Language: "fr"}, nil)
	f.store.On("SettleTranscription", ctx, mock.MatchedBy(func(s repository.Settlement) bool {
		return s.Credits == 2 && s.Language == "fr" && s.Metadata["file_size"] == int64(1)
	})).Return(8, nil)

	resp, err := f.service.Transcribe(ctx, "user-1", dto.TranscribeRequest{
		TranscriptionID: "t1",
		Language:        "fr",
		Prompt:          "Quarterly numbers",
	}, audioUpload("a"))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.CreditsUsed)
	assert.Equal(t, 8, resp.CreditsRemaining)
}

func TestTranscribe_ClaimErrors(t *testing.T) {
	tests := []struct {
		name     string
		claimErr error
		status   int
	}{
		{"unknown job", repository.ErrNotFound, http.StatusNotFound},
		{"already processing", &repository.TransitionError{TranscriptionID: "t1", Current: model.StatusProcessing, Want: model.StatusPending}, http.StatusConflict},
		{"failed job", &repository.TransitionError{TranscriptionID: "t1", Current: model.StatusFailed, Want: model.StatusPending}, http.StatusConflict},
		{"database down", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTranscribeFixture(t)
			ctx := context.Background()

			f.store.On("GetProfile", ctx, "user-1").Return(testutil.FreeProfile("user-1", 10), nil)
			f.store.On("ClaimTranscription", ctx, "user-1", "t1").Return(tt.claimErr)

			_, err := f.service.Transcribe(ctx, "user-1", dto.TranscribeRequest{TranscriptionID: "t1"}, audioUpload("a"))
			requireAPIError(t, err, tt.status)
			assert.Equal(t, 0, f.transcriber.GetCallCount())
		})
	}
}

func TestTranscribe_SettleRace(t *testing.T) {
	f := newTranscribeFixture(t)
	ctx := context.Background()

	f.store.On("GetProfile", ctx, "user-1").Return(testutil.FreeProfile("user-1", 10), nil).Once()
	f.store.On("ClaimTranscription", ctx, "user-1", "t1").Return(nil)
	f.transcriber.ExpectTranscribe(&api.TranscriptionResult{Text: "x", Duration: 60, Language: "en"}, nil)
	f.store.On("SettleTranscription", ctx, mock.Anything).Return(0, repository.ErrInsufficientCredits)
	f.store.On("FailTranscription", mock.Anything, "user-1", "t1", model.ReasonInsufficientCredits).Return(nil)
	f.store.On("GetProfile", mock.Anything, "user-1").Return(testutil.FreeProfile("user-1", 0), nil).Once()

	_, err := f.service.Transcribe(ctx, "user-1", dto.TranscribeRequest{TranscriptionID: "t1"}, audioUpload("a"))
	apiErr := requireAPIError(t, err, http.StatusPaymentRequired)
	assert.Equal(t, 0, apiErr.Details["creditsRemaining"])
}

func TestTranscribe_ProfileNotFound(t *testing.T) {
	f := newTranscribeFixture(t)
	ctx := context.Background()
	f.store.On("GetProfile", ctx, "ghost").Return(nil, repository.ErrNotFound)

	_, err := f.service.Transcribe(ctx, "ghost", dto.TranscribeRequest{TranscriptionID: "t1"}, audioUpload("a"))
	apiErr := requireAPIError(t, err, http.StatusNotFound)
	assert.Equal(t, "User profile not found", apiErr.Message)
}

func TestGet(t *testing.T) {
	store := testutil.SetupTestSQLite(t)
	testutil.SeedProfile(t, store, "owner", model.TierFree, 10)
	testutil.SeedProfile(t, store, "other", model.TierFree, 10)
	testutil.SeedTranscription(t, store, "owner", "t1", time.Now().UTC())

	service := NewTranscriptionService(store, testutil.NewMockTranscriber(t), plans.Default(), metrics.New(), zap.NewNop())
	ctx := context.Background()

	resp, err := service.Get(ctx, "owner", "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", resp.ID)
	assert.Equal(t, model.StatusPending, resp.Status)

	_, err = service.Get(ctx, "other", "t1")
	requireAPIError(t, err, http.StatusNotFound)
}
