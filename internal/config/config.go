package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all server-side configuration. LLM provider configuration
// lives in internal/llm and is read separately from the environment.
type Config struct {
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	LogMode  string `mapstructure:"LOG_MODE"`

	// DBDriver selects the store backend: "postgres" (default) or "sqlite".
	DBDriver string `mapstructure:"DB_DRIVER"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`

	// SQLitePath is the database file when DBDriver is "sqlite".
	SQLitePath string `mapstructure:"SQLITE_PATH"`

	// RedisAddr enables the rate limiter on LLM-backed endpoints when set.
	RedisAddr string `mapstructure:"REDIS_ADDR"`

	// JWTSecret verifies HS256 bearer tokens issued by the auth frontend.
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// AllowedOrigins is the CORS allow-list, comma separated.
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// LLMTimeout bounds a single roadmap or suggestion call.
	LLMTimeout time.Duration `mapstructure:"LLM_TIMEOUT"`
}

// Load reads configuration from app.env in path (if present) and the
// environment. Environment variables win over file values.
func Load(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("LOG_MODE", "dev")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "skillpath")
	v.SetDefault("DB_NAME", "skillpath")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "skillpath.db")
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:5173"})
	v.SetDefault("LLM_TIMEOUT", 60*time.Second)

	for _, key := range []string{
		"HTTP_ADDR", "LOG_MODE", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER",
		"DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "SQLITE_PATH", "REDIS_ADDR",
		"JWT_SECRET", "ALLOWED_ORIGINS", "LLM_TIMEOUT",
	} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// DSN builds the database connection string for the selected driver.
func (c Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// Validate checks settings that have no usable default.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown DB_DRIVER: %q", c.DBDriver)
	}
	return nil
}
