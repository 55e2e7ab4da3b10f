package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Settings struct {
	AppName string
	Port    string

	DBDriver    string
	DatabaseURL string

	JWTSecret          string
	AccessTokenExpire  time.Duration
	RefreshTokenExpire time.Duration

	ScoreClampAtZero bool

	AdminEmail    string
	AdminPassword string
	AdminName     string

	BrevoAPIKey     string
	EmailSender     string
	EmailSenderName string

	NotifierSchedule string
	ResultExpiry     time.Duration

	CORSOrigins string
}

var loadEnvOnce sync.Once

// Config returns a single environment value, loading .env on first use.
func Config(key string) string {
	loadEnvOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	})
	return os.Getenv(key)
}

func Load() (Settings, error) {
	s := Settings{
		AppName:          "Employee Knowledge Quiz",
		Port:             withDefault(Config("APP_PORT"), "8080"),
		DBDriver:         strings.ToLower(withDefault(Config("DB_DRIVER"), "postgres")),
		DatabaseURL:      Config("DATABASE_URL"),
		JWTSecret:        Config("JWT_SECRET"),
		AdminEmail:       Config("ADMIN_EMAIL"),
		AdminPassword:    Config("ADMIN_PASSWORD"),
		AdminName:        withDefault(Config("ADMIN_NAME"), "Administrator"),
		BrevoAPIKey:      Config("BREVO_API_KEY"),
		EmailSender:      Config("EMAIL_SENDER"),
		EmailSenderName:  Config("EMAIL_SENDER_NAME"),
		NotifierSchedule: withDefault(Config("NOTIFIER_SCHEDULE"), "@daily"),
		CORSOrigins:      withDefault(Config("CORS_ORIGINS"), "http://localhost:8080, http://127.0.0.1:8080"),
	}

	var err error
	if s.AccessTokenExpire, err = minutes("ACCESS_TOKEN_EXPIRE_MINUTES", 60); err != nil {
		return Settings{}, err
	}
	if s.RefreshTokenExpire, err = minutes("REFRESH_TOKEN_EXPIRE_MINUTES", 60*24); err != nil {
		return Settings{}, err
	}

	days, err := intValue("RESULT_EXPIRY_DAYS", 7)
	if err != nil {
		return Settings{}, err
	}
	s.ResultExpiry = time.Duration(days) * 24 * time.Hour

	if raw := Config("SCORE_CLAMP_AT_ZERO"); raw != "" {
		if s.ScoreClampAtZero, err = strconv.ParseBool(raw); err != nil {
			return Settings{}, fmt.Errorf("SCORE_CLAMP_AT_ZERO: %w", err)
		}
	}

	switch s.DBDriver {
	case "postgres":
		if s.DatabaseURL == "" {
			s.DatabaseURL = postgresDSN()
		}
	case "sqlite":
		if s.DatabaseURL == "" {
			s.DatabaseURL = "quiz.db"
		}
	default:
		return Settings{}, fmt.Errorf("unsupported DB_DRIVER %q", s.DBDriver)
	}

	if s.JWTSecret == "" {
		s.JWTSecret, err = randomSecret()
		if err != nil {
			return Settings{}, err
		}
		log.Println("⚠️ JWT_SECRET not set, using a random secret. Tokens will not survive a restart.")
	}

	return s, nil
}

func postgresDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		Config("POSTGRES_USER"),
		Config("POSTGRES_PASSWORD"),
		withDefault(Config("POSTGRES_HOST"), "db"),
		withDefault(Config("POSTGRES_PORT"), "5432"),
		Config("POSTGRES_DB"),
	)
}

func minutes(key string, fallback int) (time.Duration, error) {
	n, err := intValue(key, fallback)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Minute, nil
}

func intValue(key string, fallback int) (int, error) {
	raw := Config(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return n, nil
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
