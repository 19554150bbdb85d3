package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Environment   string
	Port          string
	DatabasePath  string
	LogLevel      string
	PublicBaseURL string
	CORSOrigins   []string

	// Sessions
	JWTSecret    string
	SessionTTL   time.Duration
	CookieSecure bool

	// Object storage
	UploadDir string
	MinIO     MinIOConfig

	// Notifications
	SMTP        SMTPConfig
	RabbitMQURL string

	// VisitorSalt keys the hash stored in place of visitor addresses.
	VisitorSalt string

	// Contact form throttling
	RedisURL          string
	ContactRateLimit  int
	ContactRateWindow time.Duration

	Redirects []Redirect
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// Enabled reports whether enough MinIO settings are present to use it.
func (m MinIOConfig) Enabled() bool {
	return m.Endpoint != "" && m.AccessKey != "" && m.SecretKey != ""
}

type SMTPConfig struct {
	Host    string
	Port    string
	User    string
	Pass    string
	ToEmail string
}

func (s SMTPConfig) Enabled() bool {
	return s.User != "" && s.Pass != ""
}

// Redirect is a static path alias served before any page route.
type Redirect struct {
	Source      string
	Destination string
	Permanent   bool
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msg("no .env file found")
	}

	cfg := &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		Port:          getEnv("PORT", "8080"),
		DatabasePath:  getEnv("DATABASE_PATH", "portfolio.db"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
		CORSOrigins:   getEnvAsList("CORS_ORIGINS", []string{"http://localhost:8080"}),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		SessionTTL:   time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		CookieSecure: getEnvAsBool("COOKIE_SECURE", false),

		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "portfolio-images"),
			UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
			PublicURL: strings.TrimRight(getEnv("MINIO_PUBLIC_URL", ""), "/"),
		},

		SMTP: SMTPConfig{
			Host:    getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:    getEnv("SMTP_PORT", "587"),
			User:    getEnv("SMTP_USER", ""),
			Pass:    getEnv("SMTP_PASS", ""),
			ToEmail: getEnv("TO_EMAIL", ""),
		},
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),
		VisitorSalt: getEnv("VISITOR_SALT", ""),

		RedisURL:          getEnv("REDIS_URL", ""),
		ContactRateLimit:  getEnvAsInt("CONTACT_RATE_LIMIT", 5),
		ContactRateWindow: time.Duration(getEnvAsInt("CONTACT_RATE_WINDOW_SECONDS", 600)) * time.Second,
	}

	cfg.Redirects = DefaultRedirects(getEnv("GITHUB_URL", "https://github.com/Zachkp"))

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			log.Fatal().Msg("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = generateRandomKey(32)
		log.Warn().Msg("generated random JWT secret for development, sessions will not survive restarts")
	}

	if cfg.VisitorSalt == "" {
		cfg.VisitorSalt = generateRandomKey(16)
		log.Warn().Msg("generated random visitor salt, unique visitor counts restart with the process")
	}

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DefaultRedirects returns the site's static path aliases.
func DefaultRedirects(githubURL string) []Redirect {
	return []Redirect{
		{Source: "/", Destination: "/portfolio", Permanent: true},
		{Source: "/old-project", Destination: "/projects/new-project", Permanent: false},
		{Source: "/github", Destination: githubURL, Permanent: false},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func generateRandomKey(length int) string {
	key := make([]byte, length)
	if _, err := rand.Read(key); err != nil {
		log.Fatal().Err(err).Msg("failed to generate random key")
	}
	return hex.EncodeToString(key)
}
