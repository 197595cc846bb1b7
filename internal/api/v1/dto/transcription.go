package dto

import (
	"io"
	"time"

	"github.com/samber/lo"

	"audioscribe/internal/app/model"
)

// AudioFile is an uploaded multipart file part
type AudioFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadRequest holds the non-file fields of an upload
type UploadRequest struct {
	Title string `form:"title" binding:"omitempty,max=255"`
}

// UploadedTranscription is the job created by an upload
type UploadedTranscription struct {
	ID               string                    `json:"id"`
	Title            string                    `json:"title"`
	OriginalFilename string                    `json:"originalFilename"`
	FileSize         int64                     `json:"fileSize"`
	Status           model.TranscriptionStatus `json:"status"`
	CreatedAt        time.Time                 `json:"createdAt"`
}

// UploadResponse is returned by POST /upload
type UploadResponse struct {
	Success       bool                  `json:"success"`
	Transcription UploadedTranscription `json:"transcription"`
}

// ListTranscriptionsQuery represents query parameters for listing transcriptions
type ListTranscriptionsQuery struct {
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=10" binding:"min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=pending processing completed failed all"`
}

// StatusFilter returns the status to filter on; empty means any
func (q ListTranscriptionsQuery) StatusFilter() model.TranscriptionStatus {
	if q.Status == "" || q.Status == "all" {
		return ""
	}
	return model.TranscriptionStatus(q.Status)
}

// Offset is the number of rows skipped before the page
func (q ListTranscriptionsQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// TranscriptionResponse represents a transcription in API responses
type TranscriptionResponse struct {
	ID               string                    `json:"id"`
	Title            string                    `json:"title"`
	OriginalFilename string                    `json:"originalFilename"`
	FileURL          string                    `json:"fileUrl"`
	Status           model.TranscriptionStatus `json:"status"`
	FileSize         int64                     `json:"fileSize"`
	Duration         *float64                  `json:"duration"`
	TranscriptText   *string                   `json:"transcriptText"`
	Language         *string                   `json:"language"`
	ConfidenceScore  *float64                  `json:"confidenceScore"`
	FailureReason    *string                   `json:"failureReason,omitempty"`
	CreatedAt        time.Time                 `json:"createdAt"`
	UpdatedAt        time.Time                 `json:"updatedAt"`
}

// PaginatedTranscriptionsResponse represents a paginated list of transcriptions
type PaginatedTranscriptionsResponse struct {
	Transcriptions []TranscriptionResponse `json:"transcriptions"`
	Pagination     PaginationResponse      `json:"pagination"`
}

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination computes the page count as ceil(total/limit)
func NewPagination(page, limit, total int) PaginationResponse {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return PaginationResponse{Page: page, Limit: limit, Total: total, Pages: pages}
}

// TranscribeRequest holds the non-file fields of a transcription request
type TranscribeRequest struct {
	TranscriptionID string `form:"transcriptionId" binding:"required"`
	Language        string `form:"language" binding:"omitempty,max=16"`
	Prompt          string `form:"prompt" binding:"omitempty,max=1000"`
}

// TranscriptResult is the engine output returned to the caller
type TranscriptResult struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
	Language string  `json:"language"`
}

// TranscribeResponse is returned by POST /transcribe
type TranscribeResponse struct {
	Success          bool             `json:"success"`
	Transcription    TranscriptResult `json:"transcription"`
	CreditsUsed      int              `json:"creditsUsed"`
	CreditsRemaining int              `json:"creditsRemaining"`
}

// ToUploadedTranscription converts a new job to its upload response
func ToUploadedTranscription(t *model.Transcription) UploadedTranscription {
	return UploadedTranscription{
		ID:               t.ID,
		Title:            t.Title,
		OriginalFilename: t.OriginalFilename,
		FileSize:         t.FileSizeBytes,
		Status:           t.Status,
		CreatedAt:        t.CreatedAt,
	}
}

// ToTranscriptionResponse converts a model to response DTO
func ToTranscriptionResponse(t model.Transcription) TranscriptionResponse {
	return TranscriptionResponse{
		ID:               t.ID,
		Title:            t.Title,
		OriginalFilename: t.OriginalFilename,
		FileURL:          t.FileURL,
		Status:           t.Status,
		FileSize:         t.FileSizeBytes,
		Duration:         t.DurationSeconds,
		TranscriptText:   t.TranscriptText,
		Language:         t.Language,
		ConfidenceScore:  t.ConfidenceScore,
		FailureReason:    t.FailureReason,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// ToTranscriptionResponses converts a page of models
func ToTranscriptionResponses(ts []model.Transcription) []TranscriptionResponse {
	return lo.Map(ts, func(t model.Transcription, _ int) TranscriptionResponse {
		return ToTranscriptionResponse(t)
	})
}
