// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// AppName names the config directory and the environment prefix.
const AppName = "rollover"

// Dir returns the directory holding config.yaml and the cache database.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", AppName)
}

// DatabasePath returns the cache database location from storage.database_path,
// defaulting to rollover.db in the config directory.
func DatabasePath() string {
	return databasePath(viper.GetViper())
}

func databasePath(v *viper.Viper) string {
	if p := v.GetString("storage.database_path"); p != "" {
		return ExpandPath(p)
	}
	return filepath.Join(Dir(), AppName+".db")
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
