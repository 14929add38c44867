package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Policy   PolicyConfig
	Ingest   IngestConfig
	Cron     CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port      int
	Env       string
	LogLevel  string
	UploadDir string
	OutputDir string
}

// PolicyConfig holds the classification thresholds. Defaults match the
// standard office schedule; override per deployment.
type PolicyConfig struct {
	MorningLimit        string
	EveningLimit        string
	HalfDayAbsent       time.Duration
	FullDayAbsent       time.Duration
	EarlyLeaveThreshold time.Duration
}

type IngestConfig struct {
	// LeaveNameSuffix is stripped from employee names in leave workbooks
	// before storage.
	LeaveNameSuffix string
}

type CronConfig struct {
	Enabled    bool
	RunHourUTC int
}

func Load() (*Config, error) {
	// A missing .env is fine; deployments inject real env vars.
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
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:      appPort,
		Env:       getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		UploadDir: getEnv("UPLOAD_DIR", "./data/uploads"),
		OutputDir: getEnv("OUTPUT_DIR", "./data/reports"),
	}

	// Classification policy
	halfDay, err := time.ParseDuration(getEnv("HALF_DAY_ABSENT", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid HALF_DAY_ABSENT: %w", err)
	}
	fullDay, err := time.ParseDuration(getEnv("FULL_DAY_ABSENT", "3h"))
	if err != nil {
		return nil, fmt.Errorf("invalid FULL_DAY_ABSENT: %w", err)
	}
	earlyLeave, err := time.ParseDuration(getEnv("EARLY_LEAVE_THRESHOLD", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid EARLY_LEAVE_THRESHOLD: %w", err)
	}

	config.Policy = PolicyConfig{
		MorningLimit:        getEnv("MORNING_LIMIT", "08:33"),
		EveningLimit:        getEnv("EVENING_LIMIT", "18:00"),
		HalfDayAbsent:       halfDay,
		FullDayAbsent:       fullDay,
		EarlyLeaveThreshold: earlyLeave,
	}

	config.Ingest = IngestConfig{
		LeaveNameSuffix: getEnv("LEAVE_NAME_SUFFIX", "CDTL"),
	}

	// Cron configuration
	cronHour, err := strconv.Atoi(getEnv("CRON_RUN_HOUR_UTC", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid CRON_RUN_HOUR_UTC: %w", err)
	}
	config.Cron = CronConfig{
		Enabled:    getEnv("CRON_ENABLED", "false") == "true",
		RunHourUTC: cronHour,
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
	if c.Cron.RunHourUTC < 0 || c.Cron.RunHourUTC > 23 {
		return fmt.Errorf("CRON_RUN_HOUR_UTC must be between 0 and 23")
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
