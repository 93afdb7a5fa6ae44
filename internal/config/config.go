package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the runtime configuration for the service.
type Config struct {
	AppPort     string
	DatabaseDSN string
	RabbitMQURL string
	Environment string
}

// Load reads configuration from a .env file (if present) and the
// environment, falling back to defaults suitable for local development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=catalog port=5432 sslmode=disable")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("APP_ENV", "production")
	viper.AutomaticEnv()

	return &Config{
		AppPort:     viper.GetString("APP_PORT"),
		DatabaseDSN: viper.GetString("DATABASE_DSN"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
		Environment: viper.GetString("APP_ENV"),
	}
}

// IsDevelopment reports whether the service runs in development mode.
// Development mode adds failure detail to error responses.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
