package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig holds the figures payroll consumes: which rounding
// granularity feeds allowance amounts and the substitute day-off defaults.
// ClosureDates lists factory-specific closure days (YYYY-MM-DD) treated as
// holidays on top of the national calendar.
type PayrollConfig struct {
	Granularity          int
	SubstituteRate       decimal.Decimal
	SubstituteExpiryDays int
	ClosureDates         []string
}

func Load() (*Config, error) {
	// A missing .env is fine; deployments pass real environment variables
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "kintai"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Payroll configuration
	payrollGranularity, err := strconv.Atoi(getEnv("PAYROLL_GRANULARITY", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_GRANULARITY: %w", err)
	}

	substituteRate, err := decimal.NewFromString(getEnv("SUBSTITUTE_ALLOWANCE_RATE", "0.35"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUBSTITUTE_ALLOWANCE_RATE: %w", err)
	}

	substituteExpiryDays, err := strconv.Atoi(getEnv("SUBSTITUTE_EXPIRY_DAYS", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUBSTITUTE_EXPIRY_DAYS: %w", err)
	}

	config.Payroll = PayrollConfig{
		Granularity:          payrollGranularity,
		SubstituteRate:       substituteRate,
		SubstituteExpiryDays: substituteExpiryDays,
		ClosureDates:         splitDates(getEnv("FACTORY_CLOSURE_DATES", "")),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	switch c.Payroll.Granularity {
	case 15, 10, 5, 1:
	default:
		return fmt.Errorf("PAYROLL_GRANULARITY must be one of 15, 10, 5, 1")
	}
	if c.Payroll.SubstituteRate.IsNegative() {
		return fmt.Errorf("SUBSTITUTE_ALLOWANCE_RATE must not be negative")
	}
	if c.Payroll.SubstituteExpiryDays <= 0 {
		return fmt.Errorf("SUBSTITUTE_EXPIRY_DAYS must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// splitDates parses a comma separated date list, dropping empty entries.
func splitDates(value string) []string {
	var dates []string
	for _, d := range strings.Split(value, ",") {
		if d = strings.TrimSpace(d); d != "" {
			dates = append(dates, d)
		}
	}
	return dates
}
