package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"renteasy/internal/cli"
	"renteasy/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the SQLite schema",
	}
	cmd.AddCommand(
		migrateStep("up", "Apply all pending migrations", (*storage.Migrator).Up),
		migrateStep("down", "Roll back every migration", (*storage.Migrator).Down),
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(func(m *storage.Migrator) error {
					v, dirty, err := m.Version()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", v, dirty)
					return nil
				})
			},
		},
	)
	return cmd
}

func migrateStep(use, short string, step func(*storage.Migrator) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *storage.Migrator) error {
				if err := step(m); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: done\n", use)
				return nil
			})
		},
	}
}

func withMigrator(fn func(*storage.Migrator) error) error {
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	m, err := storage.NewMigrator(cfg.SQLiteDBPath)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}
