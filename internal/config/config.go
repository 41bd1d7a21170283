package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harrison/scout/internal/display"
	"github.com/harrison/scout/internal/filelock"
	"github.com/harrison/scout/internal/fsentry"
	"github.com/harrison/scout/internal/logger"
	"github.com/harrison/scout/internal/walker"
)

// Config represents scout configuration options
type Config struct {
	// ReservedNames are skipped during every walk, hidden or not
	ReservedNames []string `yaml:"reserved_names"`

	// IncludeHidden descends into and matches dot-prefixed entries
	IncludeHidden bool `yaml:"include_hidden"`

	// FilesOnly restricts matching to non-directories
	FilesOnly bool `yaml:"files_only"`

	// Regex treats the pattern as a regular expression
	Regex bool `yaml:"regex"`

	// Short prints base names instead of full paths
	Short bool `yaml:"short"`

	// Color selects when output is colorized (auto, always, never)
	Color string `yaml:"color"`

	// LogLevel sets the diagnostic verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Order selects traversal order (bfs, dfs)
	Order string `yaml:"order"`

	// Gitignore applies the root's .gitignore rules
	Gitignore bool `yaml:"gitignore"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		ReservedNames: fsentry.DefaultReservedNames(),
		IncludeHidden: false,
		FilesOnly:     false,
		Regex:         false,
		Short:         false,
		Color:         string(display.ColorAuto),
		LogLevel:      logger.DefaultLevel,
		Order:         walker.BreadthFirst.String(),
		Gitignore:     false,
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// Keys present in the file replace the defaults; absent keys keep them.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := display.ParseColorMode(c.Color); err != nil {
		return err
	}

	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if _, err := walker.ParseOrder(c.Order); err != nil {
		return err
	}

	for _, name := range c.ReservedNames {
		if name == "" {
			return fmt.Errorf("reserved_names cannot contain an empty name")
		}
	}

	return nil
}

// Reserved returns the reserved names as an immutable set.
func (c *Config) Reserved() fsentry.NameSet {
	return fsentry.NewNameSet(c.ReservedNames...)
}

const defaultHeader = `# scout configuration
# Precedence: defaults < this file < SCOUT_* environment < command-line flags.
`

// DefaultYAML renders DefaultConfig as a commented YAML document.
func DefaultYAML() ([]byte, error) {
	body, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to render default config: %w", err)
	}
	return append([]byte(defaultHeader), body...), nil
}

// WriteDefault writes the default configuration to path under a file lock.
// Without force an existing file is kept and the returned error wraps
// filelock.ErrExists; with force it is replaced.
func WriteDefault(path string, force bool) error {
	data, err := DefaultYAML()
	if err != nil {
		return err
	}

	if err := filelock.WriteFile(path, data, force); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
