package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// MigrateCmd creates the migrate command
func MigrateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Migrator == nil {
				return fmt.Errorf("the %s database driver has no migrations", app.Cfg.Database.Driver)
			}

			applied, err := app.Migrator.RunMigrations(app.Ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				fmt.Fprintln(out, "Database is up to date.")
				return nil
			}

			fmt.Fprintf(out, "Applied %d migrations:\n", len(applied))
			for _, name := range applied {
				fmt.Fprintf(out, "  ✓ %s\n", name)
			}
			return nil
		},
	}
}
