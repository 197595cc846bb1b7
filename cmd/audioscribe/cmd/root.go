package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"audioscribe/cmd/audioscribe/cmd/export"
	"audioscribe/cmd/audioscribe/cmd/migrate"
	"audioscribe/cmd/audioscribe/cmd/profile"
	"audioscribe/cmd/audioscribe/cmd/serve"
	"audioscribe/cmd/audioscribe/cmd/transcribe"
	"audioscribe/cmd/audioscribe/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "audioscribe",
	Short: "Audio transcription service with per-minute credit billing",
	Long: `Audio transcription service with per-minute credit billing.
- serve runs the HTTP API (upload, transcribe, list, profile, plans)
- migrate creates the database schema
- profile create seeds a user with their plan's credits
- transcribe uploads and transcribes a local file through the API
- export writes a user's usage log to excel`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(migrate.Cmd)
	rootCmd.AddCommand(profile.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
