package services

import (
	"context"

	"audioscribe/internal/api/v1/dto"
)

// UploadService stores audio files and creates pending transcription jobs
type UploadService interface {
	Upload(ctx context.Context, userID string, req dto.UploadRequest, file dto.AudioFile) (*dto.UploadResponse, error)
	List(ctx context.Context, userID string, query dto.ListTranscriptionsQuery) (*dto.PaginatedTranscriptionsResponse, error)
}

// TranscriptionService runs and settles transcription jobs
type TranscriptionService interface {
	Transcribe(ctx context.Context, userID string, req dto.TranscribeRequest, file dto.AudioFile) (*dto.TranscribeResponse, error)
	Get(ctx context.Context, userID, id string) (*dto.TranscriptionResponse, error)
}

// ProfileService serves the caller's profile and the plan table
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	ListPlans(ctx context.Context) *dto.PlansResponse
}
