package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings. LLM provider settings live in
// llm.ConfigFromEnv because they are only needed when a provider is built.
type Config struct {
	DBPath    string
	LogLevel  string
	LogFormat string
	LogFile   string

	// RecentResults caps how many results the statistics views load.
	RecentResults int
}

// Load reads configuration from environment variables with defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		DBPath:        getEnv("LEXIQUIZ_DB", ""),
		LogLevel:      getEnv("LEXIQUIZ_LOG_LEVEL", "info"),
		LogFormat:     getEnv("LEXIQUIZ_LOG_FORMAT", "pretty"),
		LogFile:       getEnv("LEXIQUIZ_LOG_FILE", ""),
		RecentResults: getEnvInt("LEXIQUIZ_RECENT_RESULTS", 20),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
