// Package config provides configuration management for QA-helper.
//
// Values are resolved from, in order of precedence:
// 1. Environment variables (standard names: SERVER_PORT, STORAGE_DIR, LOG_LEVEL)
// 2. The local JSON config file (also written back when the user applies a
//    storage folder from the UI)
// 3. Default values
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ConfigFileName is the local JSON config file, kept next to the working
// directory unless QA_HELPER_CONFIG points elsewhere.
const ConfigFileName = ".qa_helper_config.json"

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// StorageConfig locates the directory holding the "latest" input files,
// exports and the local database.
type StorageConfig struct {
	Dir string `mapstructure:"dir"`
}

// ConfigFilePath returns the JSON config file location.
func ConfigFilePath() string {
	if p := os.Getenv("QA_HELPER_CONFIG"); p != "" {
		return p
	}
	return ConfigFileName
}

// Load reads configuration from the JSON config file and environment
// variables. The config file is optional.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(ConfigFilePath())
	v.SetConfigType("json")

	// Maps nested config: storage.dir → STORAGE_DIR, server.port → SERVER_PORT.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
		// Config file is optional; defaults and env vars apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = DefaultStorageDir()
	}
	return &cfg, nil
}

// DefaultStorageDir prefers a Desktop folder when one exists, matching how
// reviewers usually locate the tool's files, and falls back to the home
// directory.
func DefaultStorageDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "qa_helper_storage"
	}
	desktop := filepath.Join(home, "Desktop")
	if fi, err := os.Stat(desktop); err == nil && fi.IsDir() {
		return filepath.Join(desktop, "qa_helper_storage")
	}
	return filepath.Join(home, "qa_helper_storage")
}

// SaveStorageDir persists a user-chosen storage directory into the JSON
// config file so later sessions resolve to it.
func SaveStorageDir(dir string) error {
	path := ConfigFilePath()

	payload := map[string]any{}
	if b, err := os.ReadFile(path); err == nil {
		// Keep unrelated keys; a corrupt file is replaced wholesale.
		_ = json.Unmarshal(b, &payload)
	}
	storage, _ := payload["storage"].(map[string]any)
	if storage == nil {
		storage = map[string]any{}
	}
	storage["dir"] = dir
	payload["storage"] = storage

	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8170)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "15s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("storage.dir", "")
}
