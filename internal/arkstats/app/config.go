package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DiscordClientID       string // Required: Discord application client id
	DiscordClientSecret   string // Required: Discord application client secret
	DiscordRedirectURI    string // Required: OAuth2 callback URL registered with Discord
	DiscordAPI            string // Optional: Discord API base URL (default: https://discord.com/api/v10)
	DiscordAuthorizeURL   string // Optional: Discord authorize endpoint override
	DiscordBotToken       string // Required: bot token for guild lookups
	DiscordSupportGuildID string // Optional: community guild checked for supporter status
	DiscordPremiumRoleID  string // Optional: role id that marks supporters

	EncryptSecret string        // Required: secret the token cipher derives its key from
	SessionSecret string        // Optional: session signing secret (falls back to EncryptSecret)
	SessionTTL    time.Duration // Optional: session token lifetime (default: 168h)

	ArkWebAPI    string // Required: Ark cluster roster endpoint
	ArkClusterID string // Optional: cluster shown in the browser (default: NewXboxPVP)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./arkstats.db)
	HistoryRetention     time.Duration // Optional: how long population samples are kept (default: 720h)
	SampleInterval       time.Duration // Optional: population sample cadence (default: 5m)
	HousekeepingInterval time.Duration // Optional: housekeeping cadence (default: 1h)
	UpstreamTimeout      time.Duration // Optional: per-call timeout on Discord and Ark APIs (default: 10s)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		DiscordClientID:       os.Getenv("DISCORD_CLIENT_ID"),
		DiscordClientSecret:   os.Getenv("DISCORD_CLIENT_SECRET"),
		DiscordRedirectURI:    os.Getenv("DISCORD_REDIRECT_URI"),
		DiscordAPI:            os.Getenv("DISCORD_API"), // Optional: client defaults to production
		DiscordAuthorizeURL:   os.Getenv("DISCORD_AUTHORIZE_URL"),
		DiscordBotToken:       os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordSupportGuildID: os.Getenv("DISCORD_SUPPORT_GUILD_ID"),
		DiscordPremiumRoleID:  os.Getenv("DISCORD_PREMIUM_ROLE_ID"),

		EncryptSecret: os.Getenv("ENCRYPT_SECRET"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    getEnvDurationOrDefault("SESSION_TTL", 7*24*time.Hour),

		ArkWebAPI:    os.Getenv("ARK_WEB_API"),
		ArkClusterID: getEnvOrDefault("ARK_CLUSTER_ID", "NewXboxPVP"),

		DatabaseFile:         getEnvOrDefault("DATABASE_FILE", "arkstats.db"),
		HistoryRetention:     getEnvDurationOrDefault("HISTORY_RETENTION", 30*24*time.Hour),
		SampleInterval:       getEnvDurationOrDefault("SAMPLE_INTERVAL", 5*time.Minute),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		UpstreamTimeout:      getEnvDurationOrDefault("UPSTREAM_TIMEOUT", 10*time.Second),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = cfg.EncryptSecret
	}

	return cfg
}

// Validate checks the settings the service cannot run without.
func (cfg Config) Validate() error {
	switch {
	case cfg.DiscordClientID == "":
		return errors.New("DISCORD_CLIENT_ID is required")
	case cfg.DiscordClientSecret == "":
		return errors.New("DISCORD_CLIENT_SECRET is required")
	case cfg.DiscordRedirectURI == "":
		return errors.New("DISCORD_REDIRECT_URI is required")
	case cfg.DiscordBotToken == "":
		return errors.New("DISCORD_BOT_TOKEN is required")
	case cfg.EncryptSecret == "":
		return errors.New("ENCRYPT_SECRET is required")
	case cfg.ArkWebAPI == "":
		return errors.New("ARK_WEB_API is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
