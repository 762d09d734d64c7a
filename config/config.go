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
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Firebase FirebaseConfig
	Gemini   GeminiConfig
	App      AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	// AuthRateLimit is the per-IP request budget per second on /login and /signin.
	AuthRateLimit int
	AuthRateBurst int
}

type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
	// EmulatorHost points the Admin SDK at the Auth emulator; no credentials
	// file is needed then.
	EmulatorHost string
	// WebAPIKey is needed for password sign-in, which the Admin SDK does not offer.
	WebAPIKey string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	// PurgeSchedule is the cron spec (with seconds) for stale draft cleanup.
	PurgeSchedule string
}

// ClientConfig configures the shiftctl command-line client.
type ClientConfig struct {
	BaseURL         string
	CredentialsFile string
	Timeout         time.Duration
	LongTimeout     time.Duration
	LogLevel        string
}

// Load reads server configuration from the environment (and .env if present).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8000"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AuthRateLimit:  getEnvAsInt("AUTH_RATE_LIMIT", 5),
			AuthRateBurst:  getEnvAsInt("AUTH_RATE_BURST", 10),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "shift_agent"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			EmulatorHost:    getEnv("FIREBASE_AUTH_EMULATOR_HOST", ""),
			WebAPIKey:       getEnv("FIREBASE_WEB_API_KEY", ""),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		App: AppConfig{
			Environment:   getEnv("APP_ENV", "development"),
			LogLevel:      getEnv("LOG_LEVEL", "info"),
			Version:       getEnv("APP_VERSION", "1.0.0"),
			PurgeSchedule: getEnv("PURGE_SCHEDULE", "0 0 0 * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.DSN == "" && c.Database.Host == "" {
		return fmt.Errorf("DB_DSN or DB_HOST is required")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	if c.Server.AuthRateLimit <= 0 || c.Server.AuthRateBurst <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT and AUTH_RATE_BURST must be positive")
	}

	return nil
}

// LoadClient reads shiftctl configuration. Flags override these values.
func LoadClient() (*ClientConfig, error) {
	_ = godotenv.Load()

	home, err := os.UserConfigDir()
	if err != nil {
		home = "."
	}

	cfg := &ClientConfig{
		BaseURL:         getEnv("SHIFT_API_BASE_URL", "http://localhost:8000"),
		CredentialsFile: getEnv("SHIFT_CREDENTIALS_FILE", home+"/shiftctl/credentials.yaml"),
		Timeout:         getEnvAsDuration("SHIFT_API_TIMEOUT", 10*time.Second),
		LongTimeout:     getEnvAsDuration("SHIFT_API_LONG_TIMEOUT", 150*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "warn"),
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("SHIFT_API_BASE_URL is required")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
