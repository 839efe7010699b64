package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/glassbox/internal/config"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "glassbox",
		Short: "Deterministic city simulation engine",
		Long: `A tick-stepped city simulation: stationary units run resource rules,
carrier agents walk road graphs between them, and per-cell resource maps
evolve underneath.`,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (console, json)")

	rootCmd.AddCommand(newDemoCmd(), newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	if err := config.Init(cfgFile); err != nil {
		return err
	}
	if logLevel == "" {
		logLevel = config.Get().Logging.Level
	}
	if logFormat == "" {
		logFormat = config.Get().Logging.Format
	}

	if err := applyLogLevel(logLevel); err != nil {
		return err
	}
	if logFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Pick up log level edits without a restart.
	config.WatchConfig(func() {
		if err := applyLogLevel(config.Get().Logging.Level); err != nil {
			log.Warn().Err(err).Msg("ignoring config change with bad log level")
		}
	})
	return nil
}

func applyLogLevel(level string) error {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("bad log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(parsed)
	return nil
}
