package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnvStoreDSN overrides the Postgres connection string from the settings file.
const EnvStoreDSN = "NESTEGG_STORE_DSN"

// Settings holds the nestegg application settings.
type Settings struct {
	Storage StorageSettings `toml:"storage"`
	Output  OutputSettings  `toml:"output"`
	Server  ServerSettings  `toml:"server"`
	Logging LoggingSettings `toml:"logging"`
}

// StorageSettings selects and configures the input store backend.
type StorageSettings struct {
	Driver string `toml:"driver"`         // memory, file, sqlite or postgres
	Path   string `toml:"path,omitempty"` // file and sqlite backends
	DSN    string `toml:"dsn,omitempty"`  // postgres backend
	Key    string `toml:"key,omitempty"`
}

// OutputSettings holds report preferences.
type OutputSettings struct {
	Format string `toml:"format"`
}

// ServerSettings holds HTTP API settings.
type ServerSettings struct {
	Addr string `toml:"addr"`
}

// LoggingSettings holds logger settings.
type LoggingSettings struct {
	Debug bool   `toml:"debug"`
	File  string `toml:"file,omitempty"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Storage: StorageSettings{
			Driver: "file",
			Path:   filepath.Join(DataDir(), "inputs.json"),
			Key:    "retirementInputs",
		},
		Output: OutputSettings{Format: "console"},
		Server: ServerSettings{Addr: ":8080"},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nestegg")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "nestegg")
}

// DataDir returns the XDG-compliant data directory for stored inputs.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "nestegg")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "nestegg")
}

// Path returns the full path to the settings file.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the settings file, returning defaults if it doesn't exist.
func Load() (Settings, error) {
	return LoadFrom(Path())
}

// LoadFrom reads settings from path. Keys missing from the file keep their
// default values.
func LoadFrom(path string) (Settings, error) {
	cfg := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (s *Settings) applyEnv() {
	if dsn := os.Getenv(EnvStoreDSN); dsn != "" {
		s.Storage.DSN = dsn
	}
}

// Save writes the settings to the default path.
func Save(cfg Settings) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the settings to path, creating its directory.
func SaveTo(path string, cfg Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a settings file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
