package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv names the environment variable that overrides the scout home.
const HomeEnv = "SCOUT_HOME"

// ConfigFileName is the config file looked up inside the scout home.
const ConfigFileName = "config.yaml"

// GetScoutHome returns the scout home directory
// Priority order:
//  1. SCOUT_HOME environment variable (if set)
//  2. "scout" under the user's config directory
//
// The directory is not created; writers create it on demand.
func GetScoutHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config directory: %w", err)
	}

	return filepath.Join(base, "scout"), nil
}

// ResolvePath returns explicit when set, otherwise the config file inside the
// scout home.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	home, err := GetScoutHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigFileName), nil
}
