package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret        = "change-me-jwt-secret"
	defaultProviderPassword = "serviceprovider"
	defaultChatModel        = "gemini-1.5-flash"
)

// Config holds all runtime settings. Values come from the environment, optionally
// seeded from a .env file in the working directory.
type Config struct {
	AppEnv      string `mapstructure:"APP_ENV"`
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	Timezone    string `mapstructure:"TIMEZONE"`

	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	JWTAccessTTL  time.Duration `mapstructure:"JWT_ACCESS_TTL"`
	JWTRefreshTTL time.Duration `mapstructure:"JWT_REFRESH_TTL"`

	ProviderDefaultPassword string   `mapstructure:"PROVIDER_DEFAULT_PASSWORD"`
	CORSAllowedOrigins      []string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	GeminiAPIKey      string        `mapstructure:"GEMINI_API_KEY"`
	ChatModel         string        `mapstructure:"CHAT_MODEL"`
	ChatTemperature   float32       `mapstructure:"CHAT_TEMPERATURE"`
	ChatTimeout       time.Duration `mapstructure:"CHAT_TIMEOUT"`
	ChatRatePerMinute int           `mapstructure:"CHAT_RATE_PER_MINUTE"`
	ChatRateBurst     int           `mapstructure:"CHAT_RATE_BURST"`

	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
}

// Load reads .env (if present) and the process environment into a validated Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "hostelflow.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ACCESS_TTL", "60m")
	v.SetDefault("JWT_REFRESH_TTL", "168h")
	v.SetDefault("PROVIDER_DEFAULT_PASSWORD", defaultProviderPassword)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("CHAT_MODEL", defaultChatModel)
	v.SetDefault("CHAT_TEMPERATURE", 0.3)
	v.SetDefault("CHAT_TIMEOUT", "30s")
	v.SetDefault("CHAT_RATE_PER_MINUTE", 30)
	v.SetDefault("CHAT_RATE_BURST", 5)
	v.SetDefault("ADMIN_EMAIL", "admin@hostel.local")
	v.SetDefault("ADMIN_PASSWORD", "")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.CORSAllowedOrigins = splitOrigins(cfg.CORSAllowedOrigins)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location resolves the configured timezone used for "today" in slot availability.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.JWTRefreshTTL <= 0 {
		return fmt.Errorf("JWT_REFRESH_TTL must be > 0")
	}
	if cfg.ChatTimeout <= 0 {
		return fmt.Errorf("CHAT_TIMEOUT must be > 0")
	}
	if cfg.ChatRatePerMinute <= 0 || cfg.ChatRateBurst <= 0 {
		return fmt.Errorf("CHAT_RATE_PER_MINUTE and CHAT_RATE_BURST must be > 0")
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if strings.TrimSpace(cfg.ProviderDefaultPassword) == "" {
		return fmt.Errorf("PROVIDER_DEFAULT_PASSWORD must not be empty")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			return fmt.Errorf("in prod/release GEMINI_API_KEY must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

// splitOrigins flattens values that arrive as a single comma-separated env string.
func splitOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, o := range strings.Split(item, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
