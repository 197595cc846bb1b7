package repository

import (
	"context"
	"errors"
	"fmt"

	"audioscribe/internal/app/model"
)

var (
	// ErrNotFound is returned when no row matches the owner-scoped lookup
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientCredits is returned when a conditional credit decrement matches no row
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrInvalidTransition is returned when a job is not in the state an update requires
	ErrInvalidTransition = errors.New("invalid status transition")
)

// TransitionError reports the current status of a job that could not be moved.
// It unwraps to ErrInvalidTransition.
type TransitionError struct {
	TranscriptionID string
	Current         model.TranscriptionStatus
	Want            model.TranscriptionStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transcription %s is %s, expected %s", e.TranscriptionID, e.Current, e.Want)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ListTranscriptionsParams scopes and pages a listing. An empty Status means any.
type ListTranscriptionsParams struct {
	UserID string
	Status model.TranscriptionStatus
	Limit  int
	Offset int
}

// Settlement is everything recorded when a transcription is paid for
type Settlement struct {
	UserID          string
	TranscriptionID string
	Credits         int
	Transcript      string
	DurationSeconds float64
	Language        string
	ConfidenceScore float64
	Metadata        map[string]interface{}
}

// ProfileDAO reads and seeds profiles
type ProfileDAO interface {
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	CreateProfile(ctx context.Context, profile *model.Profile) error
}

// TranscriptionDAO stores transcription jobs. Every read and write is scoped
// by owner id.
type TranscriptionDAO interface {
	CreateTranscription(ctx context.Context, t *model.Transcription) error
	GetTranscription(ctx context.Context, userID, id string) (*model.Transcription, error)
	ListTranscriptions(ctx context.Context, params ListTranscriptionsParams) ([]model.Transcription, int, error)

	// ClaimTranscription moves a pending job to processing.
	ClaimTranscription(ctx context.Context, userID, id string) error

	// FailTranscription moves a processing job to failed with reason.
	FailTranscription(ctx context.Context, userID, id, reason string) error
}

// LedgerDAO settles credits
type LedgerDAO interface {
	// SettleTranscription atomically deducts s.Credits if the balance covers
	// it, completes the processing job and appends a usage log entry. It
	// returns the balance after the deduction.
	SettleTranscription(ctx context.Context, s Settlement) (int, error)

	ListUsageLogs(ctx context.Context, userID string, limit int) ([]model.UsageLog, error)
}

// Store is the full record store
type Store interface {
	ProfileDAO
	TranscriptionDAO
	LedgerDAO
	Close() error
}
