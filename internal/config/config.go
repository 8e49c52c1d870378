package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Bot      BotConfig
	Office   OfficeConfig
	Workday  WorkdayConfig
	Store    StoreConfig
	Database DatabaseConfig
	Sheets   SheetsConfig
	Ops      OpsConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Env      string
	LogLevel string
}

// BotConfig holds the Telegram transport configuration
type BotConfig struct {
	Token       string
	AdminChatID int64
}

// OfficeConfig holds the geofence around the office coordinate
type OfficeConfig struct {
	Lat          float64
	Lon          float64
	RadiusMeters float64
}

// WorkdayConfig holds the local-time rules for lateness classification
type WorkdayConfig struct {
	TZOffsetHours    int
	CutoffHour       int
	CutoffMinute     int
	MonthlyLateQuota int
	PendingReasonTTL time.Duration // 0 disables sweeping
}

// StoreConfig selects the record-store backend
type StoreConfig struct {
	Backend string // "postgres" or "sheets"
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsFile string
	ReadRange       string
}

// OpsConfig holds the admin read API configuration
type OpsConfig struct {
	Port      int
	JWTSecret string
}

func Load() (*Config, error) {
	// A missing .env file is fine in production; env vars win either way.
	_ = godotenv.Load()

	config := &Config{}

	config.App = AppConfig{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	adminChatID, err := strconv.ParseInt(getEnv("ADMIN_CHAT_ID", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_CHAT_ID: %w", err)
	}
	config.Bot = BotConfig{
		Token:       getEnv("BOT_TOKEN", ""),
		AdminChatID: adminChatID,
	}

	officeLat, err := strconv.ParseFloat(getEnv("OFFICE_LAT", "41.0057953"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LAT: %w", err)
	}
	officeLon, err := strconv.ParseFloat(getEnv("OFFICE_LON", "71.6804896"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LON: %w", err)
	}
	radius, err := strconv.ParseFloat(getEnv("GEO_RADIUS_METERS", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEO_RADIUS_METERS: %w", err)
	}
	config.Office = OfficeConfig{
		Lat:          officeLat,
		Lon:          officeLon,
		RadiusMeters: radius,
	}

	tzOffset, err := strconv.Atoi(getEnv("TZ_OFFSET_HOURS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid TZ_OFFSET_HOURS: %w", err)
	}
	cutoffHour, cutoffMinute, err := parseCutoff(getEnv("WORKDAY_CUTOFF", "09:00"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORKDAY_CUTOFF: %w", err)
	}
	quota, err := strconv.Atoi(getEnv("MONTHLY_LATE_QUOTA", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONTHLY_LATE_QUOTA: %w", err)
	}
	pendingTTL, err := time.ParseDuration(getEnv("PENDING_REASON_TTL", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid PENDING_REASON_TTL: %w", err)
	}
	config.Workday = WorkdayConfig{
		TZOffsetHours:    tzOffset,
		CutoffHour:       cutoffHour,
		CutoffMinute:     cutoffMinute,
		MonthlyLateQuota: quota,
		PendingReasonTTL: pendingTTL,
	}

	config.Store = StoreConfig{
		Backend: getEnv("STORE_BACKEND", "postgres"),
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "checkin_bot"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.Sheets = SheetsConfig{
		SpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
		CredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", ""),
		ReadRange:       getEnv("SHEETS_RANGE", "Attendance!A:I"),
	}

	opsPort, err := strconv.Atoi(getEnv("OPS_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid OPS_PORT: %w", err)
	}
	config.Ops = OpsConfig{
		Port:      opsPort,
		JWTSecret: getEnv("OPS_JWT_SECRET", ""),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.Bot.AdminChatID == 0 {
		return fmt.Errorf("ADMIN_CHAT_ID is required")
	}
	if c.Workday.MonthlyLateQuota < 0 {
		return fmt.Errorf("MONTHLY_LATE_QUOTA must not be negative")
	}

	switch c.Store.Backend {
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case "sheets":
		if c.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("SHEETS_SPREADSHEET_ID is required")
		}
		if c.Sheets.CredentialsFile == "" {
			return fmt.Errorf("SHEETS_CREDENTIALS_FILE is required")
		}
	default:
		return fmt.Errorf("unsupported STORE_BACKEND: %s", c.Store.Backend)
	}

	if c.Ops.JWTSecret == "" {
		return fmt.Errorf("OPS_JWT_SECRET is required")
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

func parseCutoff(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("cutoff out of range: %q", s)
	}
	return hour, minute, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
