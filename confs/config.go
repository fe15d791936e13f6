package confs

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every runtime setting the server needs. It is built once at
// startup and passed by reference; nothing reads the environment after Load
// returns.
type Config struct {
	ListenAddr string

	// Database connection. DBURL wins when set, otherwise the individual
	// parameters are used.
	DBURL      string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Session tokens.
	JWTSecret     string
	TokenDuration time.Duration

	// External completion provider.
	AIAPIKey  string
	AIBaseURL string
	AIModel   string
	AITimeout time.Duration

	// How long a drawer's recommendation stays cached.
	RecommendationTTL time.Duration
}

// Load reads a .env file if present and assembles the configuration.
func Load() (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not load .env", "error", err)
		}
	}

	cfg := &Config{
		ListenAddr: getEnv("LISTEN_ADDR", "0.0.0.0:3536"),
		DBURL:      os.Getenv("DB_URL"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenDuration: time.Duration(getEnvInt("TOKEN_DURATION_HOURS", 24)) * time.Hour,

		AIAPIKey:  os.Getenv("AI_API_KEY"),
		AIBaseURL: getEnv("AI_BASE_URL", "https://api.openai.com/v1"),
		AIModel:   getEnv("AI_MODEL", "gpt-3.5-turbo"),
		AITimeout: time.Duration(getEnvInt("AI_TIMEOUT_SECONDS", 30)) * time.Second,

		RecommendationTTL: time.Duration(getEnvInt("RECOMMENDATION_TTL_SECONDS", 300)) * time.Second,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required configuration: JWT_SECRET")
	}
	if cfg.DBURL == "" && (cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBPassword == "" || cfg.DBName == "") {
		return nil, fmt.Errorf("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
		return fallback
	}
	return n
}
