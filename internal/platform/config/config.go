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
	Addr                  string
	DatabaseURL           string
	JWTSecret             string
	Environment           string
	HolidayAPIURL         string
	HolidayAPITimeout     time.Duration
	HolidayCacheTTL       time.Duration
	OccupancyCapacity     int
	OccupancyKeyByYear    bool
	SundayOnlyConventions []string
	ReconcileInterval     time.Duration
	ReconcileWindowDays   int
	LongAbsenceDays       int
	RunMigrations         bool
	RunSeed               bool
	MaxBodyBytes          int64
	MetricsEnabled        bool
	SeedAdminEmail        string
	SeedAdminPassword     string
}

func Load() Config {
	// A missing .env file is fine; deployments set real env vars directly.
	_ = godotenv.Load()

	return Config{
		Addr:                  getEnv("APP_ADDR", ":8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		Environment:           getEnv("APP_ENV", "development"),
		HolidayAPIURL:         getEnv("HOLIDAY_API_URL", "https://brasilapi.com.br/api/feriados/v1"),
		HolidayAPITimeout:     getEnvDuration("HOLIDAY_API_TIMEOUT", 5*time.Second),
		HolidayCacheTTL:       getEnvDuration("HOLIDAY_CACHE_TTL", 24*time.Hour),
		OccupancyCapacity:     getEnvInt("OCCUPANCY_CAPACITY", 5),
		OccupancyKeyByYear:    getEnvBool("OCCUPANCY_KEY_BY_YEAR", false),
		SundayOnlyConventions: getEnvList("SUNDAY_ONLY_CONVENTIONS"),
		ReconcileInterval:     getEnvDuration("RECONCILE_INTERVAL", 24*time.Hour),
		ReconcileWindowDays:   getEnvInt("RECONCILE_WINDOW_DAYS", 30),
		LongAbsenceDays:       getEnvInt("LONG_ABSENCE_DAYS", 15),
		RunMigrations:         getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:               getEnvBool("RUN_SEED", true),
		MaxBodyBytes:          int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		MetricsEnabled:        getEnvBool("METRICS_ENABLED", true),
		SeedAdminEmail:        getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword:     getEnv("SEED_ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
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

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.OccupancyCapacity <= 0 {
		return fmt.Errorf("OCCUPANCY_CAPACITY must be positive")
	}
	if c.ReconcileWindowDays <= 0 {
		return fmt.Errorf("RECONCILE_WINDOW_DAYS must be positive")
	}
	if c.LongAbsenceDays <= 0 {
		return fmt.Errorf("LONG_ABSENCE_DAYS must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	return nil
}
