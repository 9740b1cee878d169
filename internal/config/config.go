package config

import (
	"os"

	"github.com/crewdesk/workforce-service/internal/utils"
	"github.com/joho/godotenv"
)

const AppName = "workforce-service"

type Config struct {
	AppName string
	AppPort string
	AppUrl  string

	// Database
	DBUrl          string
	MigrationsPath string

	// Messaging
	RabbitMQUrl   string
	AuditDisabled bool
}

// LoadConfig reads configuration from the environment. A local .env is
// loaded when present; in deployed environments the variables come
// from the runtime.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found, relying on environment")
	}

	cfg := &Config{
		AppName:        AppName,
		AppPort:        getEnv("APP_PORT", "8080"),
		AppUrl:         getEnv("APP_URL", "http://localhost:8080"),
		DBUrl:          os.Getenv("DB_URL"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
		RabbitMQUrl:    os.Getenv("RABBITMQ_URL"),
		AuditDisabled:  os.Getenv("AUDIT_DISABLED") == "true",
	}

	if cfg.DBUrl == "" {
		utils.Logger.Fatal("DB_URL environment variable is required")
	}
	if cfg.RabbitMQUrl == "" && !cfg.AuditDisabled {
		utils.Logger.Fatal("RABBITMQ_URL environment variable is required (or set AUDIT_DISABLED=true)")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
