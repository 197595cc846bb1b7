package model

import "time"

// UsageAction is the kind of billable action
type UsageAction string

const (
	ActionTranscription UsageAction = "transcription"
	ActionAPICall       UsageAction = "api_call"
)

// UsageLog is an append-only audit entry, one per billable action.
type UsageLog struct {
	ID              string                 `json:"id" db:"id"`
	UserID          string                 `json:"user_id" db:"user_id"`
	TranscriptionID *string                `json:"transcription_id,omitempty" db:"transcription_id"`
	Action          UsageAction            `json:"action" db:"action"`
	CreditsUsed     int                    `json:"credits_used" db:"credits_used"`
	Metadata        map[string]interface{} `json:"metadata,omitempty" db:"metadata"`
	CreatedAt       time.Time              `json:"created_at" db:"created_at"`
}

// TableName returns the table name for UsageLog
func (UsageLog) TableName() string {
	return "usage_logs"
}
