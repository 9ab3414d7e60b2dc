package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	ShutdownGrace time.Duration

	// Availability engine knobs.
	MinGapMinutes int

	// Batch scheduler knobs.
	HorizonDays             int
	StepMinutes             int
	DefaultDurationMinutes  int
	HighPrioritySpacingDays int
	DefaultSpacingDays      int

	// HTTP surface.
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ReadTimeout:   getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:  getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:   getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		ShutdownGrace: getEnvAsDuration("SHUTDOWN_GRACE", 30*time.Second),

		MinGapMinutes: getEnvAsInt("MIN_GAP_MINUTES", 30),

		HorizonDays:             getEnvAsInt("HORIZON_DAYS", 60),
		StepMinutes:             getEnvAsInt("STEP_MINUTES", 30),
		DefaultDurationMinutes:  getEnvAsInt("DEFAULT_DURATION_MINUTES", 60),
		HighPrioritySpacingDays: getEnvAsInt("HIGH_PRIORITY_SPACING_DAYS", 3),
		DefaultSpacingDays:      getEnvAsInt("DEFAULT_SPACING_DAYS", 7),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, dropping empties.
func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
