package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the server
type Config struct {
	Port             string
	DBPath           string
	LogLevel         string
	CORSAllowOrigins []string
	FrontendDir      string
}

// Load reads configuration from environment variables, loading a .env file
// first when one is present. A missing .env file is not an error; plain
// environment variables still apply.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		DBPath:           getEnvOrDefault("CONNEXA_DB_PATH", "connexa.db"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		CORSAllowOrigins: splitList(getEnvOrDefault("CORS_ALLOW_ORIGINS", "*")),
		FrontendDir:      getEnvOrDefault("CONNEXA_FRONTEND_DIR", "./frontend"),
	}
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
