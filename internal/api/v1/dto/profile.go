package dto

import (
	"time"

	"audioscribe/internal/app/model"
	"audioscribe/internal/app/plans"
)

// PlanLimits are the limits applied to the caller's tier
type PlanLimits struct {
	Name                   string `json:"name"`
	Credits                int    `json:"credits"`
	MaxUploadSize          int64  `json:"maxUploadSize"`
	MaxUploadSizeFormatted string `json:"maxUploadSizeFormatted"`
	CreditsPerMinute       int    `json:"creditsPerMinute"`
}

// ProfileResponse is the caller's profile with plan limits
type ProfileResponse struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	FullName         *string    `json:"fullName"`
	AvatarURL        *string    `json:"avatarUrl"`
	SubscriptionTier model.Tier `json:"subscriptionTier"`
	CreditsRemaining int        `json:"creditsRemaining"`
	Plan             PlanLimits `json:"plan"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// PlansResponse is the public pricing table
type PlansResponse struct {
	Plans            []plans.Plan     `json:"plans"`
	CreditsPerMinute int              `json:"creditsPerMinute"`
	Languages        []plans.Language `json:"languages"`
}
