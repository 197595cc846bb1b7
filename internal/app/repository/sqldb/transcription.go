package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"audioscribe/internal/app/model"
	"audioscribe/internal/app/repository"
)

const transcriptionColumns = `id, user_id, title, original_filename, file_url, storage_key, file_size_bytes,
	content_type, status, duration_seconds, language, transcript_text, failure_reason,
	confidence_score, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTranscription(row rowScanner) (*model.Transcription, error) {
	var (
		t          model.Transcription
		status     string
		duration   sql.NullFloat64
		language   sql.NullString
		transcript sql.NullString
		reason     sql.NullString
		confidence sql.NullFloat64
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.OriginalFilename, &t.FileURL, &t.StorageKey, &t.FileSizeBytes,
		&t.ContentType, &status, &duration, &language, &transcript, &reason,
		&confidence, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Status = model.TranscriptionStatus(status)
	t.DurationSeconds = floatPtr(duration)
	t.Language = stringPtr(language)
	t.TranscriptText = stringPtr(transcript)
	t.FailureReason = stringPtr(reason)
	t.ConfidenceScore = floatPtr(confidence)
	return &t, nil
}

// CreateTranscription inserts a new job. Status defaults to pending and
// timestamps to now.
func (s *DB) CreateTranscription(ctx context.Context, t *model.Transcription) error {
	now := s.now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}
	if t.Status == "" {
		t.Status = model.StatusPending
	}

	query := s.rebind(`INSERT INTO transcriptions (` + transcriptionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	var duration, confidence sql.NullFloat64
	if t.DurationSeconds != nil {
		duration = sql.NullFloat64{Float64: *t.DurationSeconds, Valid: true}
	}
	if t.ConfidenceScore != nil {
		confidence = sql.NullFloat64{Float64: *t.ConfidenceScore, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Title, t.OriginalFilename, t.FileURL, t.StorageKey, t.FileSizeBytes,
		t.ContentType, string(t.Status), duration, nullString(t.Language), nullString(t.TranscriptText),
		nullString(t.FailureReason), confidence, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transcription: %w", err)
	}
	return nil
}

// GetTranscription loads job id owned by userID
func (s *DB) GetTranscription(ctx context.Context, userID, id string) (*model.Transcription, error) {
	query := s.rebind(`SELECT ` + transcriptionColumns + ` FROM transcriptions WHERE id = ? AND user_id = ?`)

	t, err := scanTranscription(s.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transcription %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transcription: %w", err)
	}
	return t, nil
}

// ListTranscriptions returns one page of the owner's jobs, newest first,
// and the total number of matching jobs.
func (s *DB) ListTranscriptions(ctx context.Context, params repository.ListTranscriptionsParams) ([]model.Transcription, int, error) {
	where := ` WHERE user_id = ?`
	args := []interface{}{params.UserID}
	if params.Status != "" {
		where += ` AND status = ?`
		args = append(args, string(params.Status))
	}

	var total int
	countQuery := s.rebind(`SELECT COUNT(*) FROM transcriptions` + where)
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transcriptions: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	listQuery := s.rebind(`SELECT ` + transcriptionColumns + ` FROM transcriptions` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`)
	rows, err := s.db.QueryContext(ctx, listQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transcriptions: %w", err)
	}
	defer rows.Close()

	transcriptions := make([]model.Transcription, 0, limit)
	for rows.Next() {
		t, err := scanTranscription(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transcription: %w", err)
		}
		transcriptions = append(transcriptions, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration failed: %w", err)
	}

	return transcriptions, total, nil
}

// ClaimTranscription moves a pending job to processing. A missing job yields
// ErrNotFound; a job in any other state yields a *TransitionError.
func (s *DB) ClaimTranscription(ctx context.Context, userID, id string) error {
	query := s.rebind(`UPDATE transcriptions SET status = ?, updated_at = ?
		WHERE id = ? AND user_id = ? AND status = ?`)

	res, err := s.db.ExecContext(ctx, query,
		string(model.StatusProcessing), s.now(), id, userID, string(model.StatusPending))
	if err != nil {
		return fmt.Errorf("failed to claim transcription: %w", err)
	}
	return s.checkTransition(ctx, s.db, res, userID, id, model.StatusPending)
}

// FailTranscription moves a processing job to failed and records reason
func (s *DB) FailTranscription(ctx context.Context, userID, id, reason string) error {
	query := s.rebind(`UPDATE transcriptions SET status = ?, failure_reason = ?, updated_at = ?
		WHERE id = ? AND user_id = ? AND status = ?`)

	res, err := s.db.ExecContext(ctx, query,
		string(model.StatusFailed), reason, s.now(), id, userID, string(model.StatusProcessing))
	if err != nil {
		return fmt.Errorf("failed to mark transcription failed: %w", err)
	}
	return s.checkTransition(ctx, s.db, res, userID, id, model.StatusProcessing)
}

// checkTransition turns a zero-row conditional update into ErrNotFound or a
// TransitionError carrying the job's current status.
func (s *DB) checkTransition(ctx context.Context, q queryer, res sql.Result, userID, id string, want model.TranscriptionStatus) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var current string
	query := s.rebind(`SELECT status FROM transcriptions WHERE id = ? AND user_id = ?`)
	err = q.QueryRowContext(ctx, query, id, userID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("transcription %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read transcription status: %w", err)
	}

	return &repository.TransitionError{
		TranscriptionID: id,
		Current:         model.TranscriptionStatus(current),
		Want:            want,
	}
}
