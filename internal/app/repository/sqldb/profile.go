package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"audioscribe/internal/app/model"
	"audioscribe/internal/app/repository"
)

const profileColumns = `id, email, full_name, avatar_url, subscription_tier, credits_remaining, created_at, updated_at`

// GetProfile loads the profile of userID
func (s *DB) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	return s.getProfile(ctx, s.db, userID)
}

func (s *DB) getProfile(ctx context.Context, q queryer, userID string) (*model.Profile, error) {
	query := s.rebind(`SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`)

	var (
		p         model.Profile
		fullName  sql.NullString
		avatarURL sql.NullString
		tier      string
	)
	err := q.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.Email, &fullName, &avatarURL, &tier, &p.CreditsRemaining, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", userID, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	p.FullName = stringPtr(fullName)
	p.AvatarURL = stringPtr(avatarURL)
	p.SubscriptionTier = model.Tier(tier)
	return &p, nil
}

// CreateProfile inserts a profile. Timestamps default to now.
func (s *DB) CreateProfile(ctx context.Context, p *model.Profile) error {
	now := s.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	if p.SubscriptionTier == "" {
		p.SubscriptionTier = model.TierFree
	}

	query := s.rebind(`INSERT INTO profiles (` + profileColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.Email, nullString(p.FullName), nullString(p.AvatarURL),
		string(p.SubscriptionTier), p.CreditsRemaining, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}
