package config

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// Config holds all configuration for the bidback CLI.
type Config struct {
	// Journal database
	DatabasePath string

	// Optional extra holiday year file (YAML)
	HolidayFile string

	// Default portfolio size when a snapshot does not carry one
	PortfolioSize decimal.Decimal

	// Mode
	Debug bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		DatabasePath:  getEnv("BIDBACK_DB_PATH", "data/bidback.db"),
		HolidayFile:   os.Getenv("BIDBACK_HOLIDAY_FILE"),
		PortfolioSize: getEnvDecimal("BIDBACK_PORTFOLIO_SIZE", decimal.NewFromInt(100000)),
		Debug:         getEnvBool("DEBUG", false),
	}
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}
