package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	parse "github.com/veltlang/velt/cmd/velt/parse"
	"github.com/veltlang/velt/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "velt",
		Short: "A parser for velt templates",
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	var logLevel string
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(parse.NewParseCommand())

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		logger := logging.NewConsoleLogger(os.Stderr, logging.ParseLevel(logLevel))
		cmd.SetContext(logger.WithContext(cmd.Context()))
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}
