package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Review   ReviewConfig   `mapstructure:"review"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// SubmitRateLimit is the sustained number of quiz and review submissions
	// a single user may make per minute.
	SubmitRateLimit int `mapstructure:"submit_rate_limit" validate:"gt=0"`
	// SubmitBurst is the burst allowance on top of SubmitRateLimit.
	SubmitBurst     int           `mapstructure:"submit_burst"     validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"               validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"    validate:"gt=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
	// TokenLifetimeMinutes bounds tokens issued by the development token command.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// ReviewConfig contains review scheduling settings.
type ReviewConfig struct {
	// DueLimit is the number of due words returned when a client does not ask
	// for a specific amount.
	DueLimit int `mapstructure:"due_limit" validate:"gt=0,lte=500"`
	// ReminderInterval is how often the due-review reminder sweep runs.
	ReminderInterval time.Duration `mapstructure:"reminder_interval" validate:"gte=1m"`
}
