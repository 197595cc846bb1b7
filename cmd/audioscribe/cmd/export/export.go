package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"audioscribe/internal/app"
	"audioscribe/internal/app/export"
	"audioscribe/internal/config"
)

var (
	userID         string
	outputFilePath string
	limit          int
)

func init() {
	Cmd.Flags().StringVarP(&userID, "user", "u", "", "user id whose usage is exported")
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")
	Cmd.Flags().IntVarP(&limit, "limit", "l", 0, "export only the newest entries (0 = all)")

	Cmd.MarkFlagRequired("user")
	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the specified user's credit usage to excel",
	Long: `Export the specified user's credit usage to excel

- One row per usage log entry, newest first, followed by a total row`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, cleanup, err := app.InitializeStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		logs, err := store.ListUsageLogs(cmd.Context(), userID, limit)
		if err != nil {
			return err
		}

		if err := export.UsageToExcel(logs, outputFilePath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "export finished, %d entries, exported file path: %v\n", len(logs), outputFilePath)
		return nil
	},
}
