package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	AutoClose AutoCloseConfig
	Payroll   PayrollConfig
	Calendar  CalendarConfig
}

// DatabaseConfig selects the store. Driver "memory" keeps everything in process and
// ignores the connection fields.
type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxConns     int32
	MinConns     int32
	QueryTimeout time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Version        string
	AllowedOrigins []string
}

// AutoCloseConfig drives the stale punch reconciliation job.
type AutoCloseConfig struct {
	Enabled bool
	// Schedule is a Go duration ("15m") or a daily "HH:mm" time in UTC.
	Schedule       string
	Threshold      time.Duration
	CronSecretHash string
}

type PayrollConfig struct {
	Concurrency int
}

type CalendarConfig struct {
	RestDay time.Weekday
}

// Load reads configuration from the environment. A .env file in the working directory is
// loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	var err error

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	maxConns, err := getEnvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvInt("DB_MIN_CONNS", 2)
	if err != nil {
		return nil, err
	}
	queryTimeout, err := getEnvDuration("DB_QUERY_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Driver:       strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		Host:         getEnv("DB_HOST", "localhost"),
		Port:         dbPort,
		User:         getEnv("DB_USER", "postgres"),
		Password:     getEnv("DB_PASSWORD", ""),
		Name:         getEnv("DB_NAME", "poncheo"),
		SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		MaxConns:     int32(maxConns),
		MinConns:     int32(minConns),
		QueryTimeout: queryTimeout,
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Version:        getEnv("APP_VERSION", "dev"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	accessExpiration, err := getEnvDuration("JWT_ACCESS_EXPIRATION_TIME", 8*time.Hour)
	if err != nil {
		return nil, err
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	// Auto-close configuration
	autoCloseEnabled, err := getEnvBool("AUTO_CLOSE_ENABLED", true)
	if err != nil {
		return nil, err
	}
	thresholdHours, err := getEnvInt("AUTO_CLOSE_THRESHOLD_HOURS", 14)
	if err != nil {
		return nil, err
	}

	config.AutoClose = AutoCloseConfig{
		Enabled:        autoCloseEnabled,
		Schedule:       getEnv("AUTO_CLOSE_SCHEDULE", "15m"),
		Threshold:      time.Duration(thresholdHours) * time.Hour,
		CronSecretHash: getEnv("CRON_SECRET_HASH", ""),
	}

	// Payroll configuration
	concurrency, err := getEnvInt("PAYROLL_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}
	config.Payroll = PayrollConfig{Concurrency: concurrency}

	// Calendar configuration
	restDay, err := parseWeekday(getEnv("REST_DAY", "sunday"))
	if err != nil {
		return nil, err
	}
	config.Calendar = CalendarConfig{RestDay: restDay}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q", DriverPostgres, DriverMemory)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must be positive")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	if c.AutoClose.Threshold <= 0 {
		return fmt.Errorf("AUTO_CLOSE_THRESHOLD_HOURS must be positive")
	}
	if c.Payroll.Concurrency < 1 {
		return fmt.Errorf("PAYROLL_CONCURRENCY must be at least 1")
	}
	// Each payroll worker holds a pool connection.
	if int32(c.Payroll.Concurrency) >= c.Database.MaxConns {
		return fmt.Errorf("PAYROLL_CONCURRENCY must be below DB_MAX_CONNS")
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

// LogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func parseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid REST_DAY: %q", s)
}
