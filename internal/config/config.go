// Package config provides application configuration loaded from environment
// variables with defaults and validation. The messaging credential is the
// only required value; everything else has a sensible default.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Default values
const (
	DefaultSessionMaxEntries = 512
	DefaultSessionTTL        = 6 * time.Hour
	DefaultProbeTimeout      = 90 * time.Second
	DefaultFetchTimeout      = 30 * time.Minute
)

// Config holds all configuration values for the bot.
type Config struct {
	// Messaging
	TelegramToken string // TELEGRAM_TOKEN, required

	// Downloads
	DownloadDir  string        // DOWNLOAD_DIR, transient artifact directory
	ProbeTimeout time.Duration // PROBE_TIMEOUT
	FetchTimeout time.Duration // FETCH_TIMEOUT

	// Sessions
	SessionMaxEntries int           // SESSION_MAX_ENTRIES
	SessionTTL        time.Duration // SESSION_TTL

	// Logging
	LogLevel  string // debug|info|warn|error
	LogPretty bool   // pretty console logs in dev
}

// Load reads configuration from environment variables, applies defaults,
// and validates the result. A missing TELEGRAM_TOKEN is an error: the bot
// must not start without its messaging credential.
func Load() (Config, error) {
	cfg := Config{
		TelegramToken: strings.TrimSpace(getenv("TELEGRAM_TOKEN", "")),

		DownloadDir:  getenv("DOWNLOAD_DIR", filepath.Join(os.TempDir(), "tg-media-bot")),
		ProbeTimeout: getdur("PROBE_TIMEOUT", DefaultProbeTimeout),
		FetchTimeout: getdur("FETCH_TIMEOUT", DefaultFetchTimeout),

		SessionMaxEntries: getint("SESSION_MAX_ENTRIES", DefaultSessionMaxEntries),
		SessionTTL:        getdur("SESSION_TTL", DefaultSessionTTL),

		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty: getbool("LOG_PRETTY", false),
	}

	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}

	if cfg.TelegramToken == "" {
		return cfg, errors.New("TELEGRAM_TOKEN must be set")
	}
	if strings.TrimSpace(cfg.DownloadDir) == "" {
		return cfg, errors.New("DOWNLOAD_DIR must not be empty")
	}
	if cfg.ProbeTimeout <= 0 || cfg.FetchTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.SessionMaxEntries < 1 {
		return cfg, errors.New("SESSION_MAX_ENTRIES must be >= 1")
	}
	if cfg.SessionTTL <= 0 {
		return cfg, errors.New("SESSION_TTL must be > 0")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
