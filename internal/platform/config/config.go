// Package config loads application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr        string
	Environment string

	DatabaseURL   string
	RunMigrations bool
	RunSeed       bool

	JWTSecret         string
	DataEncryptionKey string
	SeedAdminEmail    string
	SeedAdminPassword string

	EmailEnabled bool
	EmailFrom    string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPUseTLS   bool

	MaxBodyBytes   int64
	MetricsEnabled bool

	PensionEmployerRate float64
	PayslipDir          string
}

// Load reads configuration from environment variables, applying defaults
// for everything that has a sensible one.
func Load() *Config {
	return &Config{
		Addr:        getEnv("APP_ADDR", ":8080"),
		Environment: getEnv("APP_ENV", "development"),

		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:       getEnvBool("RUN_SEED", true),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		DataEncryptionKey: os.Getenv("DATA_ENCRYPTION_KEY"),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@example.com"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),

		EmailEnabled: getEnvBool("EMAIL_ENABLED", false),
		EmailFrom:    getEnv("EMAIL_FROM", "payroll@example.com"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPUseTLS:   getEnvBool("SMTP_USE_TLS", true),

		MaxBodyBytes:   int64(getEnvInt("MAX_BODY_BYTES", 5*1024*1024)),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),

		PensionEmployerRate: getEnvFloat("PENSION_EMPLOYER_RATE", 0.10),
		PayslipDir:          getEnv("PAYSLIP_DIR", "storage/payslips"),
	}
}

// Validate checks the loaded configuration. Secrets may be blank in
// development, never in production.
func (c *Config) Validate() error {
	var errs []error

	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.IsProduction() {
		if c.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRET is required in production"))
		}
		if c.DataEncryptionKey == "" {
			errs = append(errs, errors.New("DATA_ENCRYPTION_KEY is required in production"))
		}
		if c.RunSeed && c.SeedAdminPassword == "" {
			errs = append(errs, errors.New("SEED_ADMIN_PASSWORD is required when seeding in production"))
		}
	}
	if c.MaxBodyBytes < 1024 {
		errs = append(errs, fmt.Errorf("MAX_BODY_BYTES %d is too small", c.MaxBodyBytes))
	}
	if c.PensionEmployerRate < 0.10 {
		errs = append(errs, fmt.Errorf("PENSION_EMPLOYER_RATE %.2f is below the statutory minimum 0.10", c.PensionEmployerRate))
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		errs = append(errs, errors.New("SMTP_HOST is required when EMAIL_ENABLED is true"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
