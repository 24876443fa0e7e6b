// Package cmd implements the nestegg CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rpgo/nestegg/internal/calculation"
	"github.com/rpgo/nestegg/internal/config"
	"github.com/rpgo/nestegg/internal/logging"
	"github.com/rpgo/nestegg/internal/storage"
	"github.com/spf13/cobra"
)

var (
	flagConfig      string
	flagDebug       bool
	flagLogFile     string
	flagFormat      string
	flagStoreDriver string
	flagStorePath   string
	flagStoreDSN    string
	flagStoreKey    string
)

// settings is resolved once per invocation: file, then env, then flags.
var (
	settings  = config.DefaultSettings()
	closeLogs = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "nestegg",
	Short: "Retirement savings calculator",
	Long: "Project savings growth with compound interest, simulate how long savings last in\n" +
		"retirement, validate inputs and keep the last-used inputs between runs.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute is the main entry point called from main.go.
func Execute() {
	err := rootCmd.Execute()
	_ = closeLogs()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Settings file (default "+config.Path()+")")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write JSON logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "Output format: console, csv, detailed-csv, json, html")
	rootCmd.PersistentFlags().StringVar(&flagStoreDriver, "store-driver", "", "Input store backend: memory, file, sqlite, postgres")
	rootCmd.PersistentFlags().StringVar(&flagStorePath, "store-path", "", "Input store file (file and sqlite backends)")
	rootCmd.PersistentFlags().StringVar(&flagStoreDSN, "store-dsn", "", "Postgres connection string (or $"+config.EnvStoreDSN+")")
	rootCmd.PersistentFlags().StringVar(&flagStoreKey, "store-key", "", "Storage slot key")
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	if flagConfig != "" {
		settings, err = config.LoadFrom(flagConfig)
	} else {
		settings, err = config.Load()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		settings.Logging.Debug = flagDebug
	}
	if flags.Changed("log-file") {
		settings.Logging.File = flagLogFile
	}
	if flags.Changed("format") {
		settings.Output.Format = flagFormat
	}
	if flags.Changed("store-driver") {
		settings.Storage.Driver = flagStoreDriver
	}
	if flags.Changed("store-path") {
		settings.Storage.Path = flagStorePath
	}
	if flags.Changed("store-dsn") {
		settings.Storage.DSN = flagStoreDSN
	}
	if flags.Changed("store-key") {
		settings.Storage.Key = flagStoreKey
	}

	cleanup, err := logging.Setup(logging.Config{
		File:   settings.Logging.File,
		Debug:  settings.Logging.Debug,
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	closeLogs = cleanup
	return nil
}

func newEngine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logging.NewCalcLogger(logging.L()))
	return engine
}

func openStore(ctx context.Context) (storage.InputStore, error) {
	return storage.Open(ctx, storage.Options{
		Driver: settings.Storage.Driver,
		Path:   settings.Storage.Path,
		DSN:    settings.Storage.DSN,
		Key:    settings.Storage.Key,
	})
}

func outputFormat() string {
	if settings.Output.Format == "" {
		return "console"
	}
	return settings.Output.Format
}
