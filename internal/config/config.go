package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Addr the binary listens on.
	Addr string
	// DatabaseURL is a postgres URL or a sqlite path (server only).
	DatabaseURL string
	// ServerURL is the core server base URL (gateway only).
	ServerURL string
	LogLevel  string
}

// LoadServer reads the core server configuration from the environment.
// A .env file is picked up when present.
func LoadServer() Config {
	_ = godotenv.Load()
	return Config{
		Addr:        getenv("SERVER_ADDR", ":9090"),
		DatabaseURL: getenv("DATABASE_URL", "shareit.db"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
}

// LoadGateway reads the gateway configuration from the environment.
func LoadGateway() Config {
	_ = godotenv.Load()
	return Config{
		Addr:      getenv("GATEWAY_ADDR", ":8080"),
		ServerURL: getenv("SHAREIT_SERVER_URL", "http://localhost:9090"),
		LogLevel:  getenv("LOG_LEVEL", "info"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
