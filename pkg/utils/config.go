package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Email    EmailConfig
	OTP      OTPConfig
	Guest    GuestConfig
	HTTP     HTTPConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

type EmailConfig struct {
	Provider       string // log, smtp, sendgrid
	Host           string
	Port           int
	User           string
	Password       string
	From           string
	SendGridAPIKey string
}

type OTPConfig struct {
	ExpiryMinutes int
	Length        int
}

// GuestConfig controls the anonymous (per-browser) store.
type GuestConfig struct {
	StorePath  string // empty means in-memory
	CookieName string
	CookieDays int
}

type HTTPConfig struct {
	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
	ShutdownTimeout    time.Duration
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	return buildConfig(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "cinelog")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("SESSION_EXPIRY_HOURS", 24*30)
	v.SetDefault("OTP_EXPIRY_MINUTES", 10)
	v.SetDefault("OTP_LENGTH", 6)
	v.SetDefault("MAIL_PROVIDER", "log")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("EMAIL_FROM", "no-reply@cinelog.local")
	v.SetDefault("GUEST_STORE_PATH", "data/guest")
	v.SetDefault("GUEST_COOKIE_NAME", "cinelog_guest")
	v.SetDefault("GUEST_COOKIE_DAYS", 365)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 15)
}

func buildConfig(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: v.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Provider:       strings.ToLower(v.GetString("MAIL_PROVIDER")),
			Host:           v.GetString("SMTP_HOST"),
			Port:           v.GetInt("SMTP_PORT"),
			User:           v.GetString("SMTP_USER"),
			Password:       v.GetString("SMTP_PASS"),
			From:           v.GetString("EMAIL_FROM"),
			SendGridAPIKey: v.GetString("SENDGRID_API_KEY"),
		},
		OTP: OTPConfig{
			ExpiryMinutes: v.GetInt("OTP_EXPIRY_MINUTES"),
			Length:        v.GetInt("OTP_LENGTH"),
		},
		Guest: GuestConfig{
			StorePath:  v.GetString("GUEST_STORE_PATH"),
			CookieName: v.GetString("GUEST_COOKIE_NAME"),
			CookieDays: v.GetInt("GUEST_COOKIE_DAYS"),
		},
		HTTP: HTTPConfig{
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			RateLimitRequests:  v.GetInt("RATE_LIMIT_REQUESTS"),
			RateLimitWindow:    time.Duration(v.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
			ShutdownTimeout:    time.Duration(v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
