package services

import (
	"context"

	"audioscribe/internal/api/v1/dto"
	"audioscribe/internal/app/plans"
	"audioscribe/internal/app/repository"
	"audioscribe/internal/app/util/format"
)

// ProfileServiceImpl implements ProfileService
type ProfileServiceImpl struct {
	store repository.ProfileDAO
	plans *plans.Registry
}

// NewProfileService creates a new profile service
func NewProfileService(store repository.ProfileDAO, registry *plans.Registry) ProfileService {
	return &ProfileServiceImpl{store: store, plans: registry}
}

// GetProfile returns the caller's balance together with the limits of the
// plan they are held to.
func (s *ProfileServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	profile, err := loadProfile(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	plan := s.plans.PlanOrFree(profile.SubscriptionTier)
	return &dto.ProfileResponse{
		ID:               profile.ID,
		Email:            profile.Email,
		FullName:         profile.FullName,
		AvatarURL:        profile.AvatarURL,
		SubscriptionTier: profile.SubscriptionTier,
		CreditsRemaining: profile.CreditsRemaining,
		Plan: dto.PlanLimits{
			Name:                   plan.Name,
			Credits:                plan.Credits,
			MaxUploadSize:          plan.MaxUploadSize,
			MaxUploadSizeFormatted: format.FormatFileSize(plan.MaxUploadSize),
			CreditsPerMinute:       s.plans.CreditsPerMinute(),
		},
		CreatedAt: profile.CreatedAt,
	}, nil
}

// ListPlans returns the pricing table
func (s *ProfileServiceImpl) ListPlans(ctx context.Context) *dto.PlansResponse {
	return &dto.PlansResponse{
		Plans:            s.plans.Plans(),
		CreditsPerMinute: s.plans.CreditsPerMinute(),
		Languages:        s.plans.Languages(),
	}
}
