package profile

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"audioscribe/internal/app"
	"audioscribe/internal/app/auth"
	"audioscribe/internal/app/model"
	"audioscribe/internal/app/plans"
	"audioscribe/internal/config"
)

var (
	userID   string
	email    string
	fullName string
	tier     string
	credits  int
	tokenTTL time.Duration
)

func init() {
	createCmd.Flags().StringVar(&userID, "id", "", "user id (default: a new uuid)")
	createCmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	createCmd.Flags().StringVar(&fullName, "name", "", "full name")
	createCmd.Flags().StringVarP(&tier, "tier", "t", string(model.TierFree), "subscription tier: free, pro or enterprise")
	createCmd.Flags().IntVarP(&credits, "credits", "c", -1, "starting credits (default: the tier's allotment)")
	createCmd.Flags().DurationVar(&tokenTTL, "token-ttl", 0, "also print a session token valid for this long")

	createCmd.MarkFlagRequired("email")

	Cmd.AddCommand(createCmd)
}

// Cmd groups the profile commands
var Cmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage user profiles",
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user profile with its plan's credits",
	Long: `Create a user profile with its plan's credits

- Stands in for the sign-up hook of the authentication provider
- With --token-ttl a session token for the new user is printed (needs AUTH_JWT_SECRET)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		registry, err := plans.Load(cfg.PlansFile)
		if err != nil {
			return err
		}
		plan, ok := registry.Plan(model.Tier(tier))
		if !ok {
			return fmt.Errorf("unknown tier %q", tier)
		}

		profile := &model.Profile{
			ID:               userID,
			Email:            email,
			SubscriptionTier: plan.ID,
			CreditsRemaining: plan.Credits,
		}
		if profile.ID == "" {
			profile.ID = uuid.NewString()
		}
		if fullName != "" {
			profile.FullName = &fullName
		}
		if credits >= 0 {
			profile.CreditsRemaining = credits
		}

		store, cleanup, err := app.InitializeStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := store.CreateProfile(cmd.Context(), profile); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "created profile %s (%s, %s plan, %d credits)\n",
			profile.ID, profile.Email, plan.Name, profile.CreditsRemaining)

		if tokenTTL > 0 {
			authenticator, err := auth.NewAuthenticator(cfg.Auth.JWTSecret)
			if err != nil {
				return err
			}
			token, err := authenticator.Issue(profile.ID, profile.Email, tokenTTL)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "token: %s\n", token)
		}
		return nil
	},
}
