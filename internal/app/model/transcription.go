package model

import "time"

// TranscriptionStatus is the lifecycle state of a transcription job
type TranscriptionStatus string

const (
	StatusPending    TranscriptionStatus = "pending"
	StatusProcessing TranscriptionStatus = "processing"
	StatusCompleted  TranscriptionStatus = "completed"
	StatusFailed     TranscriptionStatus = "failed"
)

// Failure reasons recorded on failed jobs
const (
	ReasonInsufficientCredits = "Insufficient credits"
	ReasonTranscriptionFailed = "Transcription failed"
)

// DefaultConfidenceScore is stored on completed jobs; the engine reports no confidence.
const DefaultConfidenceScore = 0.95

// Transcription is one uploaded audio file and its transcription job.
// Nullable columns are pointers. FailureReason is only set on failed jobs.
type Transcription struct {
	ID               string              `json:"id" db:"id"`
	UserID           string              `json:"user_id" db:"user_id"`
	Title            string              `json:"title" db:"title"`
	OriginalFilename string              `json:"original_filename" db:"original_filename"`
	FileURL          string              `json:"file_url" db:"file_url"`
	StorageKey       string              `json:"storage_key" db:"storage_key"`
	FileSizeBytes    int64               `json:"file_size_bytes" db:"file_size_bytes"`
	ContentType      string              `json:"content_type" db:"content_type"`
	Status           TranscriptionStatus `json:"status" db:"status"`
	DurationSeconds  *float64            `json:"duration_seconds,omitempty" db:"duration_seconds"`
	Language         *string             `json:"language,omitempty" db:"language"`
	TranscriptText   *string             `json:"transcript_text,omitempty" db:"transcript_text"`
	FailureReason    *string             `json:"failure_reason,omitempty" db:"failure_reason"`
	ConfidenceScore  *float64            `json:"confidence_score,omitempty" db:"confidence_score"`
	CreatedAt        time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for Transcription
func (Transcription) TableName() string {
	return "transcriptions"
}

// IsTerminal reports whether no further transition is possible.
func (s TranscriptionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Valid reports whether s is one of the known statuses.
func (s TranscriptionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}
