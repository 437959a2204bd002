package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/givplus/givlocal/internal/version"
)

const programName = "givlocal"

var globalFlags = struct {
	debug bool
}{}

// commonRun configures the process-wide logger shared by subcommands.
func commonRun() *slog.Logger {
	logLevel := slog.LevelInfo
	addSource := false
	if globalFlags.debug {
		logLevel = slog.LevelDebug
		addSource = true
	}
	logger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			AddSource: addSource,
			Level:     logLevel,
		}),
	)
	slog.SetDefault(logger)
	logger.Info(
		"version: "+version.GetVersionString(),
		"component", programName,
	)
	return logger
}

func main() {
	rootCmd := &cobra.Command{
		Use:   programName,
		Short: "Donor platform local core",
	}
	rootCmd.PersistentFlags().BoolVarP(
		&globalFlags.debug,
		"debug", "D",
		false,
		"enable debug logging",
	)

	rootCmd.AddCommand(
		serveCommand(),
		resetCommand(),
		versionCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		// Slog items get emitted to stderr on error, this makes sure our
		// error gets reported on stdout like our other entries
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and exit",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s\n", programName, version.GetVersionString())
		},
	}
}
