package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	apierrors "audioscribe/internal/api/errors"
	"audioscribe/internal/api/v1/dto"
	"audioscribe/internal/app/api"
	"audioscribe/internal/app/billing"
	"audioscribe/internal/app/metrics"
	"audioscribe/internal/app/model"
	"audioscribe/internal/app/plans"
	"audioscribe/internal/app/repository"
)

// TranscriptionServiceImpl implements TranscriptionService
type TranscriptionServiceImpl struct {
	store       repository.Store
	transcriber api.Transcriber
	plans       *plans.Registry
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(
	store repository.Store,
	transcriber api.Transcriber,
	registry *plans.Registry,
	m *metrics.Metrics,
	logger *zap.Logger,
) TranscriptionService {
	return &TranscriptionServiceImpl{
		store:       store,
		transcriber: transcriber,
		plans:       registry,
		metrics:     m,
		logger:      logger,
	}
}

// Transcribe claims a pending job, sends the audio to the engine and settles
// the cost. A job is only ever charged once: the claim fails for any job
// that is not pending.
func (s *TranscriptionServiceImpl) Transcribe(ctx context.Context, userID string, req dto.TranscribeRequest, file dto.AudioFile) (*dto.TranscribeResponse, error) {
	profile, err := loadProfile(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	if err := s.store.ClaimTranscription(ctx, userID, req.TranscriptionID); err != nil {
		s.metrics.TranscriptionRequests.WithLabelValues("rejected").Inc()
		return nil, claimError(err)
	}

	log := s.logger.With(
		zap.String("user_id", userID),
		zap.String("transcription_id", req.TranscriptionID),
	)
	rate := s.plans.CreditsPerMinute()

	if minimum := billing.MinimumCredits(rate); profile.CreditsRemaining < minimum {
		s.fail(ctx, log, userID, req.TranscriptionID, model.ReasonInsufficientCredits)
		s.metrics.TranscriptionRequests.WithLabelValues("insufficient_credits").Inc()
		return nil, apierrors.NewInsufficientCreditsError(minimum, profile.CreditsRemaining)
	}

	language := req.Language
	if language == "" {
		language = plans.AutoLanguage
	}

	start := time.Now()
	result, err := s.transcriber.Transcribe(ctx, api.TranscriptionRequest{
		Filename: file.Filename,
		Audio:    file.Content,
		Language: language,
		Prompt:   req.Prompt,
	})
	s.metrics.TranscriptionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error("transcription engine failed", zap.Error(err))
		s.fail(ctx, log, userID, req.TranscriptionID, model.ReasonTranscriptionFailed)
		s.metrics.TranscriptionRequests.WithLabelValues("failed").Inc()
		return nil, apierrors.NewTranscriptionFailedError(err.Error())
	}
	s.metrics.AudioDuration.Observe(result.Duration)

	cost := billing.CreditsForDuration(result.Duration, rate)
	if cost > profile.CreditsRemaining {
		s.fail(ctx, log, userID, req.TranscriptionID, model.ReasonInsufficientCredits)
		s.metrics.TranscriptionRequests.WithLabelValues("insufficient_credits").Inc()
		return nil, apierrors.NewInsufficientCreditsError(cost, profile.CreditsRemaining)
	}

	remaining, err := s.store.SettleTranscription(ctx, repository.Settlement{
		UserID:          userID,
		TranscriptionID: req.TranscriptionID,
		Credits:         cost,
		Transcript:      result.Text,
		DurationSeconds: result.Duration,
		Language:        result.Language,
		ConfidenceScore: model.DefaultConfidenceScore,
		Metadata: map[string]interface{}{
			"duration":  result.Duration,
			"language":  result.Language,
			"file_size": file.Size,
		},
	})
	if err != nil {
		return nil, s.settleError(ctx, log, userID, req.TranscriptionID, cost, err)
	}

	s.metrics.TranscriptionRequests.WithLabelValues("completed").Inc()
	s.metrics.CreditsCharged.Add(float64(cost))
	log.Info("transcription completed",
		zap.Float64("duration_seconds", result.Duration),
		zap.Int("credits_used", cost),
		zap.Int("credits_remaining", remaining),
	)

	return &dto.TranscribeResponse{
		Success: true,
		Transcription: dto.TranscriptResult{
			Text:     result.Text,
			Duration: result.Duration,
			Language: result.Language,
		},
		CreditsUsed:      cost,
		CreditsRemaining: remaining,
	}, nil
}

// Get returns one of the caller's jobs
func (s *TranscriptionServiceImpl) Get(ctx context.Context, userID, id string) (*dto.TranscriptionResponse, error) {
	t, err := s.store.GetTranscription(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierrors.NewNotFoundError("Transcription")
	}
	if err != nil {
		s.logger.Error("failed to load transcription", zap.String("transcription_id", id), zap.Error(err))
		return nil, apierrors.NewDatabaseError("Failed to load transcription")
	}

	resp := dto.ToTranscriptionResponse(*t)
	return &resp, nil
}

func claimError(err error) error {
	var transition *repository.TransitionError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apierrors.NewNotFoundError("Transcription")
	case errors.As(err, &transition):
		return apierrors.NewConflictError("Transcription is not pending").
			WithDetail("status", string(transition.Current))
	default:
		return apierrors.NewDatabaseError("Failed to start transcription")
	}
}

func (s *TranscriptionServiceImpl) settleError(ctx context.Context, log *zap.Logger, userID, id string, cost int, err error) error {
	var transition *repository.TransitionError
	switch {
	case errors.Is(err, repository.ErrInsufficientCredits):
		// the balance dropped after the profile was read
		s.fail(ctx, log, userID, id, model.ReasonInsufficientCredits)
		s.metrics.TranscriptionRequests.WithLabelValues("insufficient_credits").Inc()
		remaining := 0
		if profile, perr := s.store.GetProfile(context.WithoutCancel(ctx), userID); perr == nil {
			remaining = profile.CreditsRemaining
		}
		return apierrors.NewInsufficientCreditsError(cost, remaining)
	case errors.As(err, &transition):
		s.metrics.TranscriptionRequests.WithLabelValues("conflict").Inc()
		log.Warn("job changed state during transcription", zap.String("status", string(transition.Current)))
		return apierrors.NewConflictError("Transcription is no longer processing").
			WithDetail("status", string(transition.Current))
	default:
		log.Error("failed to settle transcription", zap.Error(err))
		s.fail(ctx, log, userID, id, model.ReasonTranscriptionFailed)
		s.metrics.TranscriptionRequests.WithLabelValues("failed").Inc()
		return apierrors.NewDatabaseError("Failed to save transcription")
	}
}

// fail marks the claimed job failed. It runs even if the request context was
// cancelled so the job does not stay in processing.
func (s *TranscriptionServiceImpl) fail(ctx context.Context, log *zap.Logger, userID, id, reason string) {
	if err := s.store.FailTranscription(context.WithoutCancel(ctx), userID, id, reason); err != nil {
		log.Error("failed to mark transcription failed", zap.String("reason", reason), zap.Error(err))
	}
}
