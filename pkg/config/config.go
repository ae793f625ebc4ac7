package config

import (
	"github.com/spf13/viper"
)

// Config groups all application configuration, loaded once at startup and
// injected into the components that need it.
type Config struct {
	App AppConfig
	DB  DBConfig
	MQ  MQConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Port     string // address for the HTTP server, e.g. ":3000"
	Env      string // development or production
	LogLevel string // trace, debug, info, warn, error
	SeedData bool   // insert sample products when the table is empty
}

// DBConfig holds database settings.
// Driver selects the backing store: "sqlite" (default), "postgres" or "memory".
type DBConfig struct {
	Driver string
	DSN    string
}

// MQConfig holds RabbitMQ settings. An empty URL disables event publishing.
type MQConfig struct {
	URL string
}

// IsDevelopment reports whether the app runs in development mode.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables via Viper,
// falling back to defaults suitable for local development.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":3000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SEED_DATA", true)
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "katalog.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	return &Config{
		App: AppConfig{
			Port:     viper.GetString("APP_PORT"),
			Env:      viper.GetString("APP_ENV"),
			LogLevel: viper.GetString("LOG_LEVEL"),
			SeedData: viper.GetBool("SEED_DATA"),
		},
		DB: DBConfig{
			Driver: viper.GetString("DB_DRIVER"),
			DSN:    viper.GetString("DB_DSN"),
		},
		MQ: MQConfig{
			URL: viper.GetString("RABBITMQ_URL"),
		},
	}
}
