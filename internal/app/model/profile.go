package model

import "time"

// Tier is a subscription level
type Tier string

const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// Profile is the per-user account row. Profiles are created by the
// registration hook of the auth provider; this service only reads them
// and deducts credits.
type Profile struct {
	ID               string    `json:"id" db:"id"`
	Email            string    `json:"email" db:"email"`
	FullName         *string   `json:"full_name,omitempty" db:"full_name"`
	AvatarURL        *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	SubscriptionTier Tier      `json:"subscription_tier" db:"subscription_tier"`
	CreditsRemaining int       `json:"credits_remaining" db:"credits_remaining"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}
