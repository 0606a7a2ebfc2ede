// Package config provides centralized configuration loaded from
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every operational parameter of the monitor. Scheduling
// values mirror the observed operating setup: 10 o'clock rollover,
// 14-16 minute pre-game window, 60 second scan period.
type Config struct {
	// Slate store
	StorePath string

	// Source
	Sport                   string
	SourceOffsetHours       int // source ET clock -> operating timezone
	SourceRequestsPerMinute int

	// Scheduling
	RolloverHour      int
	WindowLowMinutes  int
	WindowHighMinutes int
	ScanInterval      time.Duration
	Timezone          string // IANA name

	// Telegram
	TelegramBotToken string
	TelegramChatID   string

	// Status API (disabled when empty)
	APIAddr          string
	CORSAllowOrigins []string
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		StorePath: envOr("STORE_PATH", "events_today.json"),

		Sport:                   envOr("SPORT", "mlb"),
		SourceOffsetHours:       envInt("SOURCE_OFFSET_HOURS", 1),
		SourceRequestsPerMinute: envInt("SOURCE_REQUESTS_PER_MINUTE", 20),

		RolloverHour:      envInt("ROLLOVER_HOUR", 10),
		WindowLowMinutes:  envInt("ALERT_WINDOW_LOW", 14),
		WindowHighMinutes: envInt("ALERT_WINDOW_HIGH", 16),
		ScanInterval:      time.Duration(envInt("SCAN_INTERVAL_SECONDS", 60)) * time.Second,
		Timezone:          envOr("TIMEZONE", "America/Argentina/Buenos_Aires"),

		TelegramBotToken: envOr("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   envOr("TELEGRAM_CHAT_ID", ""),

		APIAddr:          envOr("API_ADDR", ""),
		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{"*"}),
	}

	if cfg.RolloverHour < 0 || cfg.RolloverHour > 23 {
		return nil, fmt.Errorf("ROLLOVER_HOUR must be 0-23, got %d", cfg.RolloverHour)
	}
	if cfg.WindowLowMinutes > cfg.WindowHighMinutes {
		return nil, fmt.Errorf("ALERT_WINDOW_LOW (%d) must not exceed ALERT_WINDOW_HIGH (%d)",
			cfg.WindowLowMinutes, cfg.WindowHighMinutes)
	}
	if cfg.ScanInterval <= 0 {
		return nil, fmt.Errorf("SCAN_INTERVAL_SECONDS must be positive")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

// Location resolves the configured operating timezone. Load already
// validated the name.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
