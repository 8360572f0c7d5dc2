package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/interview-coach/database"
)

func newMigrateCommand() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, logger := bootstrap()
				if err := database.Migrate(cmd.Context(), cfg.Database.DSN); err != nil {
					return fmt.Errorf("failed to migrate: %w", err)
				}
				logger.Info("migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the state of every migration",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, _ := bootstrap()
				return database.Status(cmd.Context(), cfg.Database.DSN, cmd.OutOrStdout())
			},
		},
	)

	return migrate
}
