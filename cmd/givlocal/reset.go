package main

import (
	"fmt"

	"github.com/spf13/cobra"

	badgervault "github.com/givplus/givlocal/adapters/badger"
	"github.com/givplus/givlocal/adapters/sqlite"
	"github.com/givplus/givlocal/internal/config"
)

func resetCommand() *cobra.Command {
	var dataDir string
	var confirm string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop all stored data and the persisted session",
		Long: "Drops every table in the store and clears the session vault. " +
			"Requires --confirm " + sqlite.DatabaseName + " to proceed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := commonRun()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}

			store, err := sqlite.New(cfg.DataDir, logger)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer store.Close()

			if err := store.Reset(confirm); err != nil {
				return err
			}

			vault, err := badgervault.New(cfg.DataDir, logger)
			if err != nil {
				return fmt.Errorf("failed to open session vault: %w", err)
			}
			defer vault.Close()

			if err := vault.Clear(); err != nil {
				return fmt.Errorf("failed to clear session vault: %w", err)
			}

			logger.Info("reset complete",
				"component", programName,
				"data_dir", cfg.DataDir,
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "data directory (empty for in-memory)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "database name, required to confirm the reset")
	return cmd
}
