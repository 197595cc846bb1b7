package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"audioscribe/internal/app"
	"audioscribe/internal/app/repository/migrate"
	"audioscribe/internal/config"
)

var printOnly bool

func init() {
	Cmd.Flags().BoolVar(&printOnly, "print", false, "print the schema instead of applying it")
}

// Cmd represents the migrate command
var Cmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	Long: `Create the database schema

- Tables and indexes that already exist are left untouched
- DATABASE_DRIVER selects postgres or sqlite`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if printOnly {
			stmts, err := migrate.Statements(cfg.Database.DriverName())
			if err != nil {
				return err
			}
			for _, stmt := range stmts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s;\n\n", stmt)
			}
			return nil
		}

		db, closeDB, err := app.OpenDatabase(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeDB()

		if err := migrate.Up(cmd.Context(), db, cfg.Database.DriverName()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "migration finished (%s)\n", cfg.Database.Driver)
		return nil
	},
}
