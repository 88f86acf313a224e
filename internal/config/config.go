package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBConn   string
	LogLevel string

	JWTSecret      string
	GoogleClientID string
	GoogleTokenURL string

	GeminiAPIKey  string
	GeminiURL     string
	GeminiModel   string
	GeminiTimeout time.Duration

	RedisAddr string
	CacheTTL  time.Duration

	ModelPath    string
	FeaturesPath string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	AlertCron    string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		DBConn:   getEnv("DB_CONN", "host=localhost port=5432 user=finai password=finai dbname=finai sslmode=disable"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleTokenURL: getEnv("GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/tokeninfo"),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiURL:     getEnv("GEMINI_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash-exp"),
		GeminiTimeout: time.Duration(getEnvInt("GEMINI_TIMEOUT", 30)) * time.Second,

		RedisAddr: getEnv("REDIS_ADDR", ""),
		CacheTTL:  time.Duration(getEnvInt("CACHE_TTL", 3600)) * time.Second,

		ModelPath:    getEnv("MODEL_PATH", "models/salary_plan_model.json"),
		FeaturesPath: getEnv("FEATURES_PATH", "models/feature_names.json"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "alerts@finai.local"),
		AlertCron:    getEnv("ALERT_CRON", "0 8 * * *"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// SMTPConfigured reports whether outgoing email is usable
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUsername != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}
