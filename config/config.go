package config

import (
	"fmt"

	"github.com/jinzhu/configor"
)

type Config struct {
	App  AppConfig
	DB   DBConfig
	Auth AuthConfig
	Log  LogConfig
}

type AppConfig struct {
	Port int `default:"8080" env:"PORT"`
}

type DBConfig struct {
	Path string `default:"nymph.db" env:"DATABASE_PATH"`
}

type AuthConfig struct {
	// JWTSecret signs session tokens with HMAC-SHA256 and must be at
	// least 32 bytes.
	JWTSecret    string `required:"true" env:"JWT_SECRET"`
	BcryptCost   int    `default:"12" env:"BCRYPT_COST"`
	CookieSecure bool   `default:"true" env:"COOKIE_SECURE"`
}

type LogConfig struct {
	Level string `default:"info" env:"LOG_LEVEL"`
}

// Load reads configuration from the environment, falling back to the
// struct tag defaults.
func Load() (Config, error) {
	var cfg Config
	if err := configor.New(&configor.Config{ENVPrefix: "-"}).Load(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if len(cfg.Auth.JWTSecret) < 32 {
		return Config{}, fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 14 {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cfg.Auth.BcryptCost)
	}

	return cfg, nil
}
