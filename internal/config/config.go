package config

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds the engine's runtime settings. Values are read from the
// environment with the WORKSPACE_ prefix and fall back to defaults.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	MaxUploadMB    int64
	LogLevel       string
	LogFormat      string
}

// Load reads configuration from the environment.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("workspace")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_base_url", "http://localhost:8080/api")
	v.SetDefault("request_timeout", "30s")
	v.SetDefault("max_upload_mb", 50)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	return &Config{
		APIBaseURL:     v.GetString("api_base_url"),
		RequestTimeout: v.GetDuration("request_timeout"),
		MaxUploadMB:    v.GetInt64("max_upload_mb"),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
	}
}

// NewLogger builds a logrus logger from the configured level and format.
func NewLogger(cfg *Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}
