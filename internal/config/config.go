// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads Registrar settings from defaults, registrar.yaml,
// REGISTRAR_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Data     DataConfig `mapstructure:"data" yaml:"data"`
	Language string     `mapstructure:"language" yaml:"language"`
	Log      LogConfig  `mapstructure:"log" yaml:"log"`
	// DB is the target of the export command.
	DB DBConfig `mapstructure:"db" yaml:"db"`
}

// DataConfig locates the three record files. Empty file names resolve to
// the default names inside Dir.
type DataConfig struct {
	Dir         string `mapstructure:"dir" yaml:"dir"`
	Students    string `mapstructure:"students" yaml:"students,omitempty"`
	Courses     string `mapstructure:"courses" yaml:"courses,omitempty"`
	Enrollments string `mapstructure:"enrollments" yaml:"enrollments,omitempty"`
}

// LogConfig controls diagnostics.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// DBConfig selects a SQL database.
type DBConfig struct {
	Type string `mapstructure:"type" yaml:"type"`
	DSN  string `mapstructure:"dsn" yaml:"dsn"`
}

// Defaults returns the built-in values for every key.
func Defaults() map[string]any {
	return map[string]any{
		"data.dir":         "./database",
		"data.students":    "",
		"data.courses":     "",
		"data.enrollments": "",
		"language":         "en",
		"log.level":        "warn",
		"db.type":          "sqlite",
		"db.dsn":           "./registrar.db",
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Registrar")
		default: // Linux, macOS, etc.
			configDir = "/etc/registrar"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "registrar")
	}

	return filepath.Join(configDir, "registrar.yaml"), nil
}

// LoadConfig builds a T from defaults, the first registrar.yaml found (or
// configFile when non-nil), the environment and the flags of cmd.
// A missing config file is not an error; viper.ConfigFileNotFoundError is
// swallowed.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile *string) (T, error) {
	var c T
	v := viper.New()

	// 1. Set defaults
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 2. File search paths
	v.SetConfigName("registrar")
	v.SetConfigType("yaml")

	// 3. Explicit --config has the highest precedence among files.
	if configFile != nil {
		v.SetConfigFile(*configFile)
	}

	// 4. Standard locations
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	// 5. Read the primary config file.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	// 6. Environment
	v.SetEnvPrefix("registrar")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 7. Flags. Only flags the user actually set override lower layers.
	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// WriteConfigFileTo writes c as YAML to path, creating the directory when
// needed.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	return os.WriteFile(path, data, 0o644)
}
