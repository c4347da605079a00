package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Values are read from app.env (if present) and overridden by environment variables.
type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	ClientOrigin  string `mapstructure:"CLIENT_ORIGIN"`

	GoogleMapsAPIKey string        `mapstructure:"GOOGLE_MAPS_API_KEY"`
	RoutesAPIURL     string        `mapstructure:"ROUTES_API_URL"`
	RoutesAPITimeout time.Duration `mapstructure:"ROUTES_API_TIMEOUT"`
	// RouteCacheTTLSeconds is how long an optimized path stays in the cache.
	RouteCacheTTLSeconds int `mapstructure:"ROUTE_CACHE_TTL_SECONDS"`

	AWSRegion   string `mapstructure:"AWS_REGION"`
	SenderEmail string `mapstructure:"SENDER_EMAIL"`
}

// LoadConfig reads configuration from path/app.env and the environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("CLIENT_ORIGIN", "http://localhost:5173")
	v.SetDefault("GOOGLE_MAPS_API_KEY", "")
	v.SetDefault("ROUTES_API_URL", "https://routes.googleapis.com/directions/v2:computeRoutes")
	v.SetDefault("ROUTES_API_TIMEOUT", "30s")
	v.SetDefault("ROUTE_CACHE_TTL_SECONDS", 3600)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("SENDER_EMAIL", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.RouteCacheTTLSeconds <= 0 {
		return nil, errors.New("ROUTE_CACHE_TTL_SECONDS must be positive")
	}
	return &cfg, nil
}

// RouteCacheTTL returns the cache TTL as a duration.
func (c *Config) RouteCacheTTL() time.Duration {
	return time.Duration(c.RouteCacheTTLSeconds) * time.Second
}
