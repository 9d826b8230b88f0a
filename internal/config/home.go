package config

import (
	"os"
	"path/filepath"
)

// ConfigEnvVar names an explicit config file, overriding discovery.
const ConfigEnvVar = "RSQSONGDB_CONFIG"

// FindConfigFile returns the config file to load when --config is not given.
// Priority order:
//  1. RSQSONGDB_CONFIG environment variable (if set)
//  2. .rsqsongdb/config.yaml in the working directory (if it exists)
//  3. rsqsongdb/config.yaml in the user config directory (if it exists)
//
// An empty string means no config file was found and defaults apply.
func FindConfigFile() string {
	return findConfigFile(os.Getwd, os.UserConfigDir)
}

func findConfigFile(getwd, userConfigDir func() (string, error)) string {
	if path := os.Getenv(ConfigEnvVar); path != "" {
		return path
	}

	if cwd, err := getwd(); err == nil {
		candidate := filepath.Join(cwd, ".rsqsongdb", "config.yaml")
		if fileExists(candidate) {
			return candidate
		}
	}

	if dir, err := userConfigDir(); err == nil {
		candidate := filepath.Join(dir, "rsqsongdb", "config.yaml")
		if fileExists(candidate) {
			return candidate
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
