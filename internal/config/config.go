// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	JWTSecretKey string
	DatabasePath string

	// LLM backend (OpenAI-compatible endpoint, e.g. a hosted API or a local
	// inference server exposing the same surface).
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	// Number of prior turns passed to the model as conversation context.
	HistoryTurns int

	Environment string
}

// Load reads configuration from environment variables or a .env file.
// A missing LLM API key is a startup failure outside development; store
// connectivity problems are only discovered per-request.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
		DatabasePath: getEnv("DATABASE_PATH", "medichat.db"),
		LLMAPIKey:    getEnv("LLM_API_KEY", ""),
		LLMBaseURL:   getEnv("LLM_BASE_URL", "http://localhost:11434/v1"),
		LLMModel:     getEnv("LLM_MODEL", "mistral"),
		HistoryTurns: getEnvAsInt("LLM_HISTORY_TURNS", 10),
		Environment:  strings.ToLower(env),
	}

	if cfg.LLMAPIKey == "" && cfg.LLMBaseURL == "" {
		log.Fatalf("Missing LLM configuration: set LLM_API_KEY or LLM_BASE_URL")
	}

	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.JWTSecretKey == "" {
			missing = append(missing, "JWT_SECRET_KEY")
		}
		if cfg.LLMAPIKey == "" {
			missing = append(missing, "LLM_API_KEY")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
