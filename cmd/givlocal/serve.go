package main

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"

	"github.com/givplus/givlocal"
	badgervault "github.com/givplus/givlocal/adapters/badger"
	fiberadapter "github.com/givplus/givlocal/adapters/fiber"
	"github.com/givplus/givlocal/adapters/sqlite"
	"github.com/givplus/givlocal/internal/config"
)

func serveCommand() *cobra.Command {
	var dataDir string
	var listen string
	var disableRoleChecks bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the donor platform HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := commonRun()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			if listen != "" {
				cfg.Listen = listen
			}
			if disableRoleChecks {
				cfg.DisableRoleChecks = true
			}

			store, err := sqlite.New(cfg.DataDir, logger)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			vault, err := badgervault.New(cfg.DataDir, logger)
			if err != nil {
				return fmt.Errorf("failed to open session vault: %w", err)
			}

			app, err := givlocal.New(givlocal.Config{
				Store:             store,
				Vault:             vault,
				Logger:            logger,
				DisableRoleChecks: cfg.DisableRoleChecks,
			})
			if err != nil {
				return err
			}
			defer app.Close()

			if restored, err := app.RestoreSession(); err == nil && restored {
				logger.Info("restored persisted session",
					"component", programName,
				)
			}

			server := fiber.New()
			fiberadapter.New(server, app).RegisterRoutes()

			logger.Info("listening",
				"component", programName,
				"address", cfg.Listen,
			)
			return server.Listen(cfg.Listen)
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "data directory (empty for in-memory)")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default :3000)")
	cmd.Flags().BoolVar(&disableRoleChecks, "disable-role-checks", false,
		"let any authenticated identity through role-restricted routes (demo only)")
	return cmd
}
