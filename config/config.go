package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "defaultSecret"

// Config holds application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Mail     MailConfig
	Notify   NotifyConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Calendar CalendarConfig
}

type AppConfig struct {
	Env            string
	Port           string
	LogLevel       string
	CORSOrigin     string
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	Driver   string // postgres, mysql or sqlite
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Path     string // sqlite file
}

type AuthConfig struct {
	JWTSecret   string
	AdminEmails []string
}

type MailConfig struct {
	FromName       string
	ResendAPIKey   string
	ResendFrom     string
	ResendBaseURL  string
	SendGridAPIKey string
	SendGridFrom   string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPass       string
	EmailUser      string // Gmail fallback
	EmailPass      string
}

type NotifyConfig struct {
	WebhookURL  string
	AdminEmail  string
	Timeout     time.Duration
	DigestCron  string
	SiteBaseURL string
}

type StorageConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	UseSSL       bool
	PublicBucket bool
	PublicURL    string
}

type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	SubmitLimit  int
	SubmitWindow time.Duration
}

type CalendarConfig struct {
	Timezone string
}

// LoadConfig reads configuration from the environment, loading .env first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Env:            getEnv("APP_ENV", "development"),
			Port:           getEnv("PORT", "3000"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			CORSOrigin:     getEnv("CORS_ALLOW_ORIGIN", "*"),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "sellinginfinity"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "data/sellinginfinity.db"),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET_KEY", defaultJWTSecret),
			AdminEmails: getEnvList("ADMIN_EMAILS", []string{"admin@sellinginfinity.com", "yadu@sellinginfinity.com"}),
		},
		Mail: MailConfig{
			FromName:       getEnv("EMAIL_FROM_NAME", "Selling Infinity"),
			ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
			ResendFrom:     getEnv("RESEND_FROM", "onboarding@resend.dev"),
			ResendBaseURL:  getEnv("RESEND_BASE_URL", "https://api.resend.com"),
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			SendGridFrom:   getEnv("SENDGRID_FROM", ""),
			SMTPHost:       getEnv("SMTP_HOST", ""),
			SMTPPort:       getEnvInt("SMTP_PORT", 587),
			SMTPUser:       getEnv("SMTP_USER", ""),
			SMTPPass:       getEnv("SMTP_PASS", ""),
			EmailUser:      getEnv("EMAIL_USER", ""),
			EmailPass:      getEnv("EMAIL_PASS", ""),
		},
		Notify: NotifyConfig{
			WebhookURL:  getEnv("ADMIN_NOTIFY_URL", ""),
			AdminEmail:  getEnv("ADMIN_NOTIFY_EMAIL", ""),
			Timeout:     getEnvDuration("NOTIFY_TIMEOUT", 15*time.Second),
			DigestCron:  getEnv("REVIEW_DIGEST_CRON", "0 9 * * *"),
			SiteBaseURL: getEnv("APP_URL", "http://localhost:3000"),
		},
		Storage: StorageConfig{
			Endpoint:     getEnv("MINIO_ENDPOINT", ""),
			AccessKey:    getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:    getEnv("MINIO_SECRET_KEY", ""),
			Bucket:       getEnv("MINIO_BUCKET", "product-pdfs"),
			UseSSL:       getEnvBool("MINIO_USE_SSL", false),
			PublicBucket: getEnvBool("MINIO_PUBLIC_BUCKET", false),
			PublicURL:    getEnv("STORAGE_PUBLIC_URL", ""),
		},
		Redis: RedisConfig{
			Addr:         getEnv("REDIS_ADDR", ""),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvInt("REDIS_DB", 0),
			SubmitLimit:  getEnvInt("REVIEW_SUBMIT_LIMIT", 5),
			SubmitWindow: getEnvDuration("REVIEW_SUBMIT_WINDOW", 10*time.Minute),
		},
		Calendar: CalendarConfig{
			Timezone: getEnv("CALENDAR_TIMEZONE", "UTC"),
		},
	}

	if cfg.IsProduction() && cfg.Auth.JWTSecret == defaultJWTSecret {
		return nil, errors.New("JWT_SECRET_KEY must be configured in production")
	}

	if _, err := time.LoadLocation(cfg.Calendar.Timezone); err != nil {
		return nil, errors.New("CALENDAR_TIMEZONE is not a valid IANA zone: " + cfg.Calendar.Timezone)
	}

	return cfg, nil
}

// Warnings lists insecure or incomplete settings worth logging at startup.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Auth.JWTSecret == defaultJWTSecret {
		warnings = append(warnings, "using default JWT_SECRET_KEY, update it in your environment")
	}
	if !c.MailConfigured() {
		warnings = append(warnings, "no email provider configured (RESEND_API_KEY, SENDGRID_API_KEY or SMTP)")
	}
	if c.Storage.Endpoint == "" {
		warnings = append(warnings, "MINIO_ENDPOINT not set, product PDF endpoints are disabled")
	}
	if c.Redis.Addr == "" {
		warnings = append(warnings, "REDIS_ADDR not set, review submissions are not rate limited")
	}
	return warnings
}

// SMTPConfigured reports a custom host, or Gmail credentials.
func (c *Config) SMTPConfigured() bool {
	return c.Mail.SMTPHost != "" || (c.Mail.EmailUser != "" && c.Mail.EmailPass != "")
}

func (c *Config) MailConfigured() bool {
	return c.Mail.ResendAPIKey != "" || c.Mail.SendGridAPIKey != "" || c.SMTPConfigured()
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		d, err := time.ParseDuration(value)
		if err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
