package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Env           string
	Season        string
	Provider      ProviderConfig
	Turso         TursoConfig
	Slack         SlackConfig
	SyncTimeout   time.Duration
}

type ProviderConfig struct {
	BaseURL string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}
