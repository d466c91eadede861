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

// CasdoorConfig holds the identity provider settings. Tokens issued by
// Casdoor are the only accepted end-user credential.
type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

// KafkaConfig configures the usage-event publisher. An empty Brokers list
// disables publishing entirely.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// InferenceConfig configures the quiz generation backend.
type InferenceConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// AdminConfig is the console credential pair. Logins that match it bypass
// the identity provider, so both values must come from the environment and
// are never persisted.
type AdminConfig struct {
	Username string
	Password string
}

// NavigationConfig holds the paced-transition timings. The holds are
// cosmetic; correctness never depends on them.
type NavigationConfig struct {
	PreCommitHold  time.Duration
	PostCommitHold time.Duration
	SessionTTL     time.Duration
}

type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	Casdoor    CasdoorConfig
	Kafka      KafkaConfig
	Inference  InferenceConfig
	Admin      AdminConfig
	Navigation NavigationConfig
}

// LoadConfig reads configuration from the environment, with an optional
// .env file for local development.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		Casdoor: CasdoorConfig{
			Endpoint:     getEnv("CASDOOR_ENDPOINT", ""),
			ClientID:     getEnv("CASDOOR_CLIENT_ID", ""),
			ClientSecret: getEnv("CASDOOR_CLIENT_SECRET", ""),
			Cert:         getEnv("CASDOOR_CERT", ""),
			Organization: getEnv("CASDOOR_ORGANIZATION", "sankalan"),
			Application:  getEnv("CASDOOR_APPLICATION", "campus-service"),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_USAGE_TOPIC", "campus.usage"),
		},
		Inference: InferenceConfig{
			BaseURL: getEnv("INFERENCE_BASE_URL", ""),
			APIKey:  getEnv("INFERENCE_API_KEY", ""),
			Model:   getEnv("INFERENCE_MODEL", "gemini-2.0-flash"),
			Timeout: time.Duration(getEnvAsInt("INFERENCE_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Navigation: NavigationConfig{
			PreCommitHold:  time.Duration(getEnvAsInt("NAV_PRE_COMMIT_HOLD_MS", 450)) * time.Millisecond,
			PostCommitHold: time.Duration(getEnvAsInt("NAV_POST_COMMIT_HOLD_MS", 350)) * time.Millisecond,
			SessionTTL:     time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 24*7)) * time.Hour,
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
