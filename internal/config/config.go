package config

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}
	// Optional env var with a default.
	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	syncTimeout, err := time.ParseDuration(getEnvOr("SYNC_TIMEOUT", "3m"))
	if err != nil {
		log.Fatalf("Error: Invalid SYNC_TIMEOUT: %s", err)
	}

	cfg := Config{
		DBName:        getEnvOr("DB_NAME", "dartliga.db"),
		MigrationsDir: "./migrations",
		Port:          getEnvOr("PORT", "8080"),
		Env:           getEnvOr("ENV", "development"),
		Season:        getEnv("SEASON"),
		Provider: ProviderConfig{
			BaseURL: getEnv("PROVIDER_BASE_URL"),
		},
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		Slack: SlackConfig{
			Token:     getEnvOr("SLACK_BOT_TOKEN", ""),
			ChannelID: getEnvOr("SLACK_CHANNEL_ID", ""),
		},
		SyncTimeout: syncTimeout,
	}
	return cfg
}
