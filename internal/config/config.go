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
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	Store              string
	SeedFile           string // memory store only
	CORSAllowedOrigins []string
}

// AttendanceConfig holds the attendance policy knobs. Every threshold lives here
// so the classifier never sees a literal.
type AttendanceConfig struct {
	Timezone             string
	MinimumWorkHours     float64
	LateCutoff           string // HH:MM, local to Timezone
	WeekendDays          []time.Weekday
	GeofenceRadiusMeters float64
	IncompleteAsAbsent   bool
	MaxClockSkew         time.Duration
	MaxShiftLength       time.Duration
}

func Load() (*Config, error) {
	// .env is optional; real deployments inject the environment directly.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "cmlabs-hris"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Store:              getEnv("STORE", "postgres"),
		SeedFile:           getEnv("MEMORY_SEED_FILE", ""),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance policy
	attendance, err := loadAttendance()
	if err != nil {
		return nil, err
	}
	config.Attendance = attendance

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadAttendance() (AttendanceConfig, error) {
	minHours, err := strconv.ParseFloat(getEnv("ATTENDANCE_MIN_WORK_HOURS", "4"), 64)
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid ATTENDANCE_MIN_WORK_HOURS: %w", err)
	}

	radius, err := strconv.ParseFloat(getEnv("GEOFENCE_RADIUS_METERS", "500"), 64)
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid GEOFENCE_RADIUS_METERS: %w", err)
	}

	incompleteAsAbsent, err := strconv.ParseBool(getEnv("ATTENDANCE_INCOMPLETE_AS_ABSENT", "false"))
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid ATTENDANCE_INCOMPLETE_AS_ABSENT: %w", err)
	}

	weekend, err := ParseWeekdays(getEnvSlice("ATTENDANCE_WEEKEND_DAYS", "6,0"))
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid ATTENDANCE_WEEKEND_DAYS: %w", err)
	}

	skew, err := time.ParseDuration(getEnv("ATTENDANCE_MAX_CLOCK_SKEW", "5m"))
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid ATTENDANCE_MAX_CLOCK_SKEW: %w", err)
	}

	shift, err := time.ParseDuration(getEnv("ATTENDANCE_MAX_SHIFT_LENGTH", "16h"))
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid ATTENDANCE_MAX_SHIFT_LENGTH: %w", err)
	}

	return AttendanceConfig{
		Timezone:             getEnv("ATTENDANCE_TIMEZONE", "Asia/Kolkata"),
		MinimumWorkHours:     minHours,
		LateCutoff:           getEnv("ATTENDANCE_LATE_CUTOFF", "09:55"),
		WeekendDays:          weekend,
		GeofenceRadiusMeters: radius,
		IncompleteAsAbsent:   incompleteAsAbsent,
		MaxClockSkew:         skew,
		MaxShiftLength:       shift,
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Store != "postgres" && c.App.Store != "memory" {
		return fmt.Errorf("STORE must be postgres or memory, got %q", c.App.Store)
	}
	if c.App.Store == "postgres" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Database.MaxConns <= 0 || c.Database.MinConns < 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive and DB_MIN_CONNS not negative")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME is invalid: %w", err)
	}
	if _, err := time.LoadLocation(c.Attendance.Timezone); err != nil {
		return fmt.Errorf("ATTENDANCE_TIMEZONE is invalid: %w", err)
	}
	if _, err := time.Parse("15:04", c.Attendance.LateCutoff); err != nil {
		return fmt.Errorf("ATTENDANCE_LATE_CUTOFF must be HH:MM: %w", err)
	}
	if c.Attendance.MinimumWorkHours < 0 || c.Attendance.MinimumWorkHours > 24 {
		return fmt.Errorf("ATTENDANCE_MIN_WORK_HOURS must be between 0 and 24")
	}
	if c.Attendance.GeofenceRadiusMeters <= 0 {
		return fmt.Errorf("GEOFENCE_RADIUS_METERS must be positive")
	}
	if c.Attendance.MaxClockSkew < 0 {
		return fmt.Errorf("ATTENDANCE_MAX_CLOCK_SKEW must not be negative")
	}
	if c.Attendance.MaxShiftLength <= 0 || c.Attendance.MaxShiftLength > 24*time.Hour {
		return fmt.Errorf("ATTENDANCE_MAX_SHIFT_LENGTH must be between 0 and 24h")
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

// ParseWeekdays converts Go weekday numbers (0=Sunday ... 6=Saturday) into time.Weekday values.
func ParseWeekdays(values []string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(values))
	for _, v := range values {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("weekday %q: %w", v, err)
		}
		if n < 0 || n > 6 {
			return nil, fmt.Errorf("weekday %d out of range 0-6", n)
		}
		days = append(days, time.Weekday(n))
	}
	return days, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string = strings.Split(value, ",")
	return result
}
