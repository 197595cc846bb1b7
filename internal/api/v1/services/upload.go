package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apierrors "audioscribe/internal/api/errors"
	"audioscribe/internal/api/v1/dto"
	"audioscribe/internal/app/metrics"
	"audioscribe/internal/app/model"
	"audioscribe/internal/app/plans"
	"audioscribe/internal/app/repository"
	"audioscribe/internal/app/storage"
	"audioscribe/internal/app/util/format"
)

// UploadServiceImpl implements UploadService
type UploadServiceImpl struct {
	store   repository.Store
	blobs   storage.BlobStore
	plans   *plans.Registry
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(
	store repository.Store,
	blobs storage.BlobStore,
	registry *plans.Registry,
	m *metrics.Metrics,
	logger *zap.Logger,
) UploadService {
	return &UploadServiceImpl{
		store:   store,
		blobs:   blobs,
		plans:   registry,
		metrics: m,
		logger:  logger,
	}
}

// Upload validates the file against the caller's plan, stores it and
// creates a pending job. If the job cannot be recorded the stored file is
// removed again.
func (s *UploadServiceImpl) Upload(ctx context.Context, userID string, req dto.UploadRequest, file dto.AudioFile) (*dto.UploadResponse, error) {
	profile, err := loadProfile(ctx, s.store, userID)
	if err != nil {
		s.metrics.Uploads.WithLabelValues("rejected").Inc()
		return nil, err
	}

	if !format.IsAudioMIME(file.ContentType) {
		s.metrics.Uploads.WithLabelValues("rejected").Inc()
		return nil, apierrors.NewInvalidFileTypeError(file.ContentType)
	}

	maxSize := s.plans.MaxUploadSize(profile.SubscriptionTier)
	if file.Size > maxSize {
		s.metrics.Uploads.WithLabelValues("rejected").Inc()
		apiErr := apierrors.NewFileTooLargeError(maxSize, file.Size)
		apiErr.Message = "File size exceeds limit for " + string(profile.SubscriptionTier) + " plan"
		return nil, apiErr
	}

	key := storage.AudioKey(userID, file.Filename)
	if err := s.blobs.Put(ctx, key, file.Content, file.Size, file.ContentType); err != nil {
		s.metrics.Uploads.WithLabelValues("failed").Inc()
		s.logger.Error("failed to store upload",
			zap.String("user_id", userID),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, apierrors.NewStorageError("Failed to upload file").WithDetail("error", err.Error())
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = format.GenerateTitle(file.Filename)
	}

	transcription := &model.Transcription{
		ID:               uuid.NewString(),
		UserID:           userID,
		Title:            title,
		OriginalFilename: file.Filename,
		FileURL:          s.blobs.URL(key),
		StorageKey:       key,
		FileSizeBytes:    file.Size,
		ContentType:      file.ContentType,
		Status:           model.StatusPending,
	}

	if err := s.store.CreateTranscription(ctx, transcription); err != nil {
		s.metrics.Uploads.WithLabelValues("failed").Inc()
		s.logger.Error("failed to record upload, removing stored file",
			zap.String("user_id", userID),
			zap.String("key", key),
			zap.Error(err),
		)
		if delErr := s.blobs.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			s.logger.Error("failed to remove orphaned upload",
				zap.String("key", key),
				zap.Error(delErr),
			)
		}
		return nil, apierrors.NewDatabaseError("Failed to upload file").WithDetail("error", err.Error())
	}

	s.metrics.Uploads.WithLabelValues("success").Inc()
	s.metrics.UploadBytes.Observe(float64(file.Size))

	return &dto.UploadResponse{
		Success:       true,
		Transcription: dto.ToUploadedTranscription(transcription),
	}, nil
}

// List returns one page of the caller's jobs, newest first
func (s *UploadServiceImpl) List(ctx context.Context, userID string, query dto.ListTranscriptionsQuery) (*dto.PaginatedTranscriptionsResponse, error) {
	transcriptions, total, err := s.store.ListTranscriptions(ctx, repository.ListTranscriptionsParams{
		UserID: userID,
		Status: query.StatusFilter(),
		Limit:  query.Limit,
		Offset: query.Offset(),
	})
	if err != nil {
		s.logger.Error("failed to list transcriptions", zap.String("user_id", userID), zap.Error(err))
		return nil, apierrors.NewDatabaseError("Failed to list transcriptions")
	}

	return &dto.PaginatedTranscriptionsResponse{
		Transcriptions: dto.ToTranscriptionResponses(transcriptions),
		Pagination:     dto.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// loadProfile maps a missing profile to 404 and any other failure to 500
func loadProfile(ctx context.Context, store repository.ProfileDAO, userID string) (*model.Profile, error) {
	profile, err := store.GetProfile(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierrors.NewNotFoundError("User profile")
	}
	if err != nil {
		return nil, apierrors.NewDatabaseError("Failed to load user profile")
	}
	return profile, nil
}
