package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "dev-secret"

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Seed     SeedConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name    string
	Env     string
	Host    string
	Port    string
	Version string
}

// HTTPConfig controls the HTTP surface.
type HTTPConfig struct {
	RequestTimeoutSeconds int
	StaticDir             string
	CORSOrigins           string
}

// PostgresConfig holds DB connection values. An empty DSN selects the
// in-memory repositories.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values for the ticket list cache.
type RedisConfig struct {
	Enabled           bool
	Addr              string
	Password          string
	DB                int
	TicketListTTLSecs int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// SeedConfig controls bootstrap account creation.
type SeedConfig struct {
	Enabled bool
	File    string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "ticket-api"),
			Env:     getEnv("APP_ENV", "development"),
			Host:    getEnv("APP_HOST", "0.0.0.0"),
			Port:    getEnv("APP_PORT", getEnv("PORT", "3000")),
			Version: getEnv("APP_VERSION", "dev"),
		},
		HTTP: HTTPConfig{
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 0),
			StaticDir:             os.Getenv("HTTP_STATIC_DIR"),
			CORSOrigins:           getEnv("HTTP_CORS_ORIGINS", "*"),
		},
		Postgres: PostgresConfig{
			DSN:            getEnv("POSTGRES_DSN", os.Getenv("DATABASE_URL")),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Enabled:           getEnvAsBool("REDIS_ENABLED", false),
			Addr:              getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:          os.Getenv("REDIS_PASSWORD"),
			DB:                redisDB,
			TicketListTTLSecs: getEnvAsInt("CACHE_TICKET_LIST_TTL_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", defaultJWTSecret),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 12*60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 10),
		},
		Seed: SeedConfig{
			Enabled: getEnvAsBool("SEED_USERS", true),
			File:    os.Getenv("SEED_FILE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that are unsafe to run.
func (c *Config) Validate() error {
	if c.App.IsProduction() && c.Auth.JWTSecret == defaultJWTSecret {
		return errors.New("AUTH_JWT_SECRET must be set in production")
	}
	return nil
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (h HTTPConfig) RequestTimeout() time.Duration {
	if h.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(h.RequestTimeoutSeconds) * time.Second
}

// TicketListTTL returns how long cached ticket lists stay valid.
func (r RedisConfig) TicketListTTL() time.Duration {
	if r.TicketListTTLSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(r.TicketListTTLSecs) * time.Second
}

// AccessTokenTTL returns the token validity window.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
