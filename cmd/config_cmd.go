package cmd

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rpgo/nestegg/internal/config"
	"github.com/rpgo/nestegg/internal/output"
	"github.com/spf13/cobra"
)

var (
	flagConfigInit bool
	flagForce      bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current settings",
	RunE:  runConfig,
}

var exampleCmd = &cobra.Command{
	Use:   "example [file]",
	Short: "Write an example scenario file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExample,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigInit, "init", false, "Write the current settings to the settings file")
	exampleCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(exampleCmd)
}

func settingsPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.Path()
}

func runConfig(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	path := settingsPath()

	if flagConfigInit {
		if err := config.SaveTo(path, settings); err != nil {
			return err
		}
		fmt.Fprintf(w, "  Wrote %s\n\n", path)
	}

	fmt.Fprintf(w, "  Config file: %s\n", path)
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintln(w, "  Status: loaded")
	} else {
		fmt.Fprintln(w, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [storage]")
	fmt.Fprintf(w, "    Driver: %s\n", settings.Storage.Driver)
	if settings.Storage.Path != "" {
		fmt.Fprintf(w, "    Path:   %s\n", settings.Storage.Path)
	}
	if settings.Storage.DSN != "" {
		fmt.Fprintf(w, "    DSN:    %s\n", maskDSN(settings.Storage.DSN))
	}
	fmt.Fprintf(w, "    Key:    %s\n", settings.Storage.Key)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [output]")
	fmt.Fprintf(w, "    Format: %s\n", outputFormat())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [server]")
	fmt.Fprintf(w, "    Addr: %s\n", settings.Server.Addr)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [logging]")
	fmt.Fprintf(w, "    Debug: %v\n", settings.Logging.Debug)
	if settings.Logging.File != "" {
		fmt.Fprintf(w, "    File:  %s\n", settings.Logging.File)
	}
	return nil
}

// maskDSN hides the password in a postgres URL.
func maskDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		return u.Redacted()
	}
	return dsn
}

func runExample(cmd *cobra.Command, args []string) error {
	path := "scenarios.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !flagForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	example := config.NewInputParser().CreateExampleConfiguration()
	if err := output.SaveConfiguration(example, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Wrote %d scenarios to %s\n", len(example.Scenarios), path)
	return nil
}
