package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	SMTP       SMTPConfig
	Office     OfficeConfig
	Attendance AttendanceConfig
	Notifier   NotifierConfig
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
	Port           int
	Env            string
	LogLevel       string
	FrontendURL    string
	RequestTimeout time.Duration
}

// SMTPConfig holds outbound mail settings. An empty Host disables delivery.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// OfficeConfig is the geofence reference point used by check-in and check-out.
type OfficeConfig struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

type AttendanceConfig struct {
	// FaceDescriptorLength is the required embedding size on registration. Zero accepts any length.
	FaceDescriptorLength int
}

type NotifierConfig struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded, using process environment", "error", err)
	}

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
		Name:     getEnv("DB_NAME", "attendance_payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	requestTimeout, err := time.ParseDuration(getEnv("APP_REQUEST_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_REQUEST_TIMEOUT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		RequestTimeout: requestTimeout,
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_EMAIL", "no-reply@localhost"),
		FromName: getEnv("SMTP_FROM_NAME", "HR System"),
	}

	officeLat, err := getEnvFloat("OFFICE_LATITUDE", 23.0457)
	if err != nil {
		return nil, err
	}
	officeLng, err := getEnvFloat("OFFICE_LONGITUDE", 72.5647)
	if err != nil {
		return nil, err
	}
	officeRadius, err := getEnvFloat("OFFICE_RADIUS_KM", 3)
	if err != nil {
		return nil, err
	}

	config.Office = OfficeConfig{
		Latitude:  officeLat,
		Longitude: officeLng,
		RadiusKm:  officeRadius,
	}

	descriptorLength, err := strconv.Atoi(getEnv("FACE_DESCRIPTOR_LENGTH", "128"))
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_DESCRIPTOR_LENGTH: %w", err)
	}
	config.Attendance = AttendanceConfig{FaceDescriptorLength: descriptorLength}

	workers, err := strconv.Atoi(getEnv("NOTIFIER_WORKERS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFIER_WORKERS: %w", err)
	}
	queueSize, err := strconv.Atoi(getEnv("NOTIFIER_QUEUE_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFIER_QUEUE_SIZE: %w", err)
	}
	sendTimeout, err := time.ParseDuration(getEnv("NOTIFIER_SEND_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFIER_SEND_TIMEOUT: %w", err)
	}

	config.Notifier = NotifierConfig{
		Workers:     workers,
		QueueSize:   queueSize,
		SendTimeout: sendTimeout,
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
	if c.Office.Latitude < -90 || c.Office.Latitude > 90 {
		return fmt.Errorf("OFFICE_LATITUDE must be between -90 and 90")
	}
	if c.Office.Longitude < -180 || c.Office.Longitude > 180 {
		return fmt.Errorf("OFFICE_LONGITUDE must be between -180 and 180")
	}
	if c.Office.RadiusKm <= 0 {
		return fmt.Errorf("OFFICE_RADIUS_KM must be positive")
	}
	if c.Attendance.FaceDescriptorLength < 0 {
		return fmt.Errorf("FACE_DESCRIPTOR_LENGTH must not be negative")
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

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
