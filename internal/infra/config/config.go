package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DiscordToken string

	SupervisorChannelID string
	SupervisorRoleID    string
	SummaryChannelID    string
	OfficeChannelID     string

	DataFile string
	Timezone string

	LogLevel    string
	Environment string

	HTTPAddr     string
	UptimeSecret string

	CronSpecReminder     string // Hourly reminder + escalation pass
	CronSpecAutoFlip     string // Daily UPCOMING -> IN_PROGRESS sweep
	CronSpecSummary      string // Daily noon summary
	CronSpecOfficeAlerts string // Daily office alerts

	WeatherEnabled bool
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.DiscordToken = os.Getenv("DISCORD_TOKEN")
	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is not set")
	}

	cfg.SupervisorChannelID = os.Getenv("SUPERVISOR_CHANNEL_ID")
	if cfg.SupervisorChannelID == "" {
		return nil, fmt.Errorf("SUPERVISOR_CHANNEL_ID is not set")
	}

	// Optional channels: the corresponding sweeps are skipped when unset.
	cfg.SupervisorRoleID = os.Getenv("SUPERVISOR_ROLE_ID")
	cfg.SummaryChannelID = os.Getenv("SUMMARY_CHANNEL_ID")
	cfg.OfficeChannelID = os.Getenv("OFFICE_CHANNEL_ID")

	cfg.DataFile = os.Getenv("DATA_FILE")
	if cfg.DataFile == "" {
		cfg.DataFile = "data/store.json"
	}

	cfg.Timezone = os.Getenv("TIMEZONE")
	if cfg.Timezone == "" {
		cfg.Timezone = "America/Chicago" // Organization operating timezone
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	cfg.UptimeSecret = os.Getenv("UPTIME_SECRET")

	cfg.CronSpecReminder = os.Getenv("CRON_SPEC_REMINDER")
	if cfg.CronSpecReminder == "" {
		cfg.CronSpecReminder = "0 * * * *" // Default: top of every hour
	}
	cfg.CronSpecAutoFlip = os.Getenv("CRON_SPEC_AUTO_FLIP")
	if cfg.CronSpecAutoFlip == "" {
		cfg.CronSpecAutoFlip = "5 0 * * *" // Default: 12:05 AM daily
	}
	cfg.CronSpecSummary = os.Getenv("CRON_SPEC_SUMMARY")
	if cfg.CronSpecSummary == "" {
		cfg.CronSpecSummary = "0 12 * * *" // Default: noon daily
	}
	cfg.CronSpecOfficeAlerts = os.Getenv("CRON_SPEC_OFFICE_ALERTS")
	if cfg.CronSpecOfficeAlerts == "" {
		cfg.CronSpecOfficeAlerts = "0 13 * * *" // Default: 1:00 PM daily
	}

	cfg.WeatherEnabled = os.Getenv("WEATHER_ENABLED") != "false"

	return cfg, nil
}
