// Package config loads the optional kubectl-copi settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"github.com/renato0307/kubectl-copi/internal/kubectl"
	"github.com/renato0307/kubectl-copi/internal/logging"
	"github.com/renato0307/kubectl-copi/internal/ui"
)

const (
	appDirName     = "kubectl-copi"
	configFilename = "config.yaml"
)

// Subcommands that defaultCommand may name
const (
	// CommandContext picks a kubeconfig context
	CommandContext = "ctx"
	// CommandNamespace picks a namespace for the current context
	CommandNamespace = "ns"
)

// ErrInvalidCommand is returned when defaultCommand names no subcommand
var ErrInvalidCommand = errors.New("invalid default command")

// Config holds user preferences. Command line flags override these values.
type Config struct {
	DefaultCommand string    `json:"defaultCommand,omitempty"`
	Theme          string    `json:"theme,omitempty"`
	Kubectl        string    `json:"kubectl,omitempty"`
	Log            LogConfig `json:"log,omitempty"`
}

// LogConfig controls the optional log file and its rotation
type LogConfig struct {
	File       string `json:"file,omitempty"`
	Level      string `json:"level,omitempty"`
	Format     string `json:"format,omitempty"`
	MaxSizeMB  int    `json:"maxSizeMB,omitempty"`
	MaxBackups int    `json:"maxBackups,omitempty"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		DefaultCommand: CommandContext,
		Theme:          ui.DefaultTheme,
		Kubectl:        kubectl.DefaultBinary,
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  logging.DefaultMaxSizeMB,
			MaxBackups: logging.DefaultMaxBackups,
		},
	}
}

// Dir returns $XDG_CONFIG_HOME/kubectl-copi, or ~/.config/kubectl-copi
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appDirName), nil
}

// DefaultPath returns the config file location inside Dir
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFilename), nil
}

// Load reads the file at path on top of the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	switch c.DefaultCommand {
	case CommandContext, CommandNamespace:
	default:
		return fmt.Errorf("%w %q (expected %q or %q)",
			ErrInvalidCommand, c.DefaultCommand, CommandContext, CommandNamespace)
	}

	if c.Log.Level != "" {
		if _, err := logging.ParseLevel(c.Log.Level); err != nil {
			return err
		}
	}
	if c.Log.Format != "" {
		if _, err := logging.ParseFormat(c.Log.Format); err != nil {
			return err
		}
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return errors.New("log rotation limits must not be negative")
	}
	return nil
}
