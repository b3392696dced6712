package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cesargomez89/soundboard/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port            string
	DataDir         string
	DBPath          string
	ServerURL       string
	InstallID       string
	LogLevel        string
	LogFormat       string
	SyncInterval    time.Duration
	RequestInterval time.Duration
	AllowSensitive  bool
}

// Keys understood by the configuration layer. Environment variables use the
// upper-cased key (DB_PATH, SERVER_URL, ...).
const (
	KeyConfigFile      = "config_file"
	KeyPort            = "port"
	KeyDataDir         = "data_dir"
	KeyDBPath          = "db_path"
	KeyServerURL       = "server_url"
	KeyInstallID       = "install_id"
	KeyLogLevel        = "log_level"
	KeyLogFormat       = "log_format"
	KeySyncInterval    = "sync_interval"
	KeyRequestInterval = "request_interval"
	KeyAllowSensitive  = "allow_sensitive"
)

// Load reads configuration from environment variables, falling back to
// defaults. A yaml/json/toml file named by CONFIG_FILE is read first when set.
func Load() (*Config, error) {
	return LoadWith(viper.New())
}

// LoadWith reads configuration through v, so callers can bind command-line
// flags before loading.
func LoadWith(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		Port:            v.GetString(KeyPort),
		DataDir:         v.GetString(KeyDataDir),
		DBPath:          v.GetString(KeyDBPath),
		ServerURL:       strings.TrimRight(v.GetString(KeyServerURL), "/"),
		InstallID:       v.GetString(KeyInstallID),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFormat:       v.GetString(KeyLogFormat),
		SyncInterval:    v.GetDuration(KeySyncInterval),
		RequestInterval: v.GetDuration(KeyRequestInterval),
		AllowSensitive:  v.GetBool(KeyAllowSensitive),
	}

	if cfg.DBPath == "" && cfg.DataDir != "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, constants.DefaultDBFileName)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, constants.DefaultPort)
	v.SetDefault(KeyDataDir, constants.DefaultDataDir)
	v.SetDefault(KeyDBPath, "")
	v.SetDefault(KeyServerURL, constants.DefaultServerURL)
	v.SetDefault(KeyInstallID, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeySyncInterval, constants.DefaultSyncInterval)
	v.SetDefault(KeyRequestInterval, constants.DefaultRequestInterval)
	v.SetDefault(KeyAllowSensitive, false)
	v.SetDefault(KeyConfigFile, "")
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	// Validate Port
	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.DataDir == "" {
		errors = append(errors, "DATA_DIR cannot be empty")
	}

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	// Validate ServerURL
	if c.ServerURL == "" {
		errors = append(errors, "SERVER_URL cannot be empty")
	} else if u, err := url.Parse(c.ServerURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("SERVER_URL is not a valid URL: %s", c.ServerURL))
	}

	if c.SyncInterval < time.Minute {
		errors = append(errors, fmt.Sprintf("SYNC_INTERVAL must be at least 1m, got: %s", c.SyncInterval))
	}

	if c.RequestInterval < 0 {
		errors = append(errors, fmt.Sprintf("REQUEST_INTERVAL cannot be negative, got: %s", c.RequestInterval))
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// ContentDir returns the directory holding downloaded files for a content kind.
func (c *Config) ContentDir(kind string) string {
	return filepath.Join(c.DataDir, kind)
}
