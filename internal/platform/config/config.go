package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	Environment        string
	HRAPIBaseURL       string
	HRAPIToken         string
	HRAPITimeout       time.Duration
	CORSAllowedOrigins []string
}

// Load reads configuration from the environment, preferring an optional
// .env file for local development.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		Environment:        getEnv("APP_ENV", "development"),
		HRAPIBaseURL:       getEnv("HR_API_BASE_URL", "http://localhost:5000"),
		HRAPIToken:         getEnv("HR_API_TOKEN", ""),
		HRAPITimeout:       getEnvDuration("HR_API_TIMEOUT", 25*time.Second),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return fallback
	}
	return cleaned
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.HRAPIBaseURL) == "" {
		return fmt.Errorf("HR_API_BASE_URL is required")
	}
	if !strings.HasPrefix(c.HRAPIBaseURL, "http://") && !strings.HasPrefix(c.HRAPIBaseURL, "https://") {
		return fmt.Errorf("HR_API_BASE_URL must be an http or https URL")
	}
	if c.HRAPITimeout <= 0 {
		return fmt.Errorf("HR_API_TIMEOUT must be positive")
	}
	if c.Environment == "production" && strings.TrimSpace(c.HRAPIToken) == "" {
		return fmt.Errorf("HR_API_TOKEN must be set in production")
	}
	return nil
}
