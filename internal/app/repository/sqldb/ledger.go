package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"audioscribe/internal/app/model"
	"audioscribe/internal/app/repository"
)

// SettleTranscription deducts credits, completes the job and appends the
// usage log in one transaction. Nothing is written unless all three succeed.
func (s *DB) SettleTranscription(ctx context.Context, st repository.Settlement) (int, error) {
	if st.Credits < 0 {
		return 0, fmt.Errorf("settlement credits must not be negative, got %d", st.Credits)
	}

	metadata, err := json.Marshal(st.Metadata)
	if err != nil {
		return 0, fmt.Errorf("failed to encode usage metadata: %w", err)
	}

	var remaining int
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		now := s.now()

		res, err := tx.ExecContext(ctx, s.rebind(`UPDATE profiles
			SET credits_remaining = credits_remaining - ?, updated_at = ?
			WHERE id = ? AND credits_remaining >= ?`),
			st.Credits, now, st.UserID, st.Credits)
		if err != nil {
			return fmt.Errorf("failed to deduct credits: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected == 0 {
			if _, err := s.getProfile(ctx, tx, st.UserID); err != nil {
				return err
			}
			return repository.ErrInsufficientCredits
		}

		res, err = tx.ExecContext(ctx, s.rebind(`UPDATE transcriptions
			SET status = ?, transcript_text = ?, duration_seconds = ?, language = ?,
				confidence_score = ?, failure_reason = NULL, updated_at = ?
			WHERE id = ? AND user_id = ? AND status = ?`),
			string(model.StatusCompleted), st.Transcript, st.DurationSeconds, st.Language,
			st.ConfidenceScore, now, st.TranscriptionID, st.UserID, string(model.StatusProcessing))
		if err != nil {
			return fmt.Errorf("failed to complete transcription: %w", err)
		}
		if err := s.checkTransition(ctx, tx, res, st.UserID, st.TranscriptionID, model.StatusProcessing); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, s.rebind(`INSERT INTO usage_logs
			(id, user_id, transcription_id, action, credits_used, metadata, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`),
			uuid.NewString(), st.UserID, st.TranscriptionID, string(model.ActionTranscription),
			st.Credits, string(metadata), now)
		if err != nil {
			return fmt.Errorf("failed to insert usage log: %w", err)
		}

		err = tx.QueryRowContext(ctx, s.rebind(`SELECT credits_remaining FROM profiles WHERE id = ?`),
			st.UserID).Scan(&remaining)
		if err != nil {
			return fmt.Errorf("failed to read balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

// ListUsageLogs returns the newest usage entries of userID. A limit of zero
// or less returns all of them.
func (s *DB) ListUsageLogs(ctx context.Context, userID string, limit int) ([]model.UsageLog, error) {
	query := `SELECT id, user_id, transcription_id, action, credits_used, metadata, created_at
		FROM usage_logs WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage logs: %w", err)
	}
	defer rows.Close()

	var logs []model.UsageLog
	for rows.Next() {
		var (
			l               model.UsageLog
			transcriptionID sql.NullString
			action          string
			metadata        sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.UserID, &transcriptionID, &action, &l.CreditsUsed, &metadata, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan usage log: %w", err)
		}
		l.TranscriptionID = stringPtr(transcriptionID)
		l.Action = model.UsageAction(action)
		if metadata.Valid && metadata.String != "" && metadata.String != "null" {
			if err := json.Unmarshal([]byte(metadata.String), &l.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode usage metadata: %w", err)
			}
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return logs, nil
}
