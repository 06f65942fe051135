package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cortexmed/clinextract/internal/infrastructure/database/postgres"
)

var migrateSteps int

// NewMigrateCmd creates the migrate command group for the vocabulary store
// schema.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL vocabulary store schema",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config
			if err := postgres.RunMigrations(cfg.Database.URL(), cfg.Database.MigrationPath); err != nil {
				return err
			}
			PrintSuccess(cmd, "migrations applied")
			return nil
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the given number of migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config
			if err := postgres.RollbackMigration(cfg.Database.URL(), cfg.Database.MigrationPath, migrateSteps); err != nil {
				return err
			}
			PrintSuccess(cmd, fmt.Sprintf("rolled back %d migration(s)", migrateSteps))
			return nil
		},
	}
	downCmd.Flags().IntVar(&migrateSteps, "steps", 1, "number of migrations to roll back")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current migration version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config
			version, dirty, err := postgres.MigrationStatus(cfg.Database.URL(), cfg.Database.MigrationPath)
			if err != nil {
				return err
			}
			if version == 0 {
				return PrintResult(cmd, "no migrations applied")
			}
			state := "clean"
			if dirty {
				state = "dirty"
			}
			return PrintResult(cmd, fmt.Sprintf("version %d (%s)", version, state))
		},
	}

	cmd.AddCommand(upCmd, downCmd, statusCmd)
	return cmd
}
