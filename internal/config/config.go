// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port           string `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	DBSSLMode      string `mapstructure:"DB_SSLMODE"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	// Feed and asset settings.
	FeedPageSize         int    `mapstructure:"FEED_PAGE_SIZE"`
	UploadDir            string `mapstructure:"UPLOAD_DIR"`
	ImageTypes           string `mapstructure:"IMAGE_TYPES"`
	ImageMaxUploadSizeMB int    `mapstructure:"IMAGE_MAX_UPLOAD_SIZE_MB"`
}

// LoadConfig loads application configuration from .env, config files and
// environment variables.
func LoadConfig() (*Config, error) {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The base config file may not exist; defaults and env cover that case.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("merging config.%s.yml: %w", env, err)
			}
		}
	}

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "quill")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("FEED_PAGE_SIZE", 2)
	viper.SetDefault("UPLOAD_DIR", "images")
	viper.SetDefault("IMAGE_TYPES", "png,jpg,jpeg")
	viper.SetDefault("IMAGE_MAX_UPLOAD_SIZE_MB", 10)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and meet
// security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.FeedPageSize < 1 {
		return errors.New("FEED_PAGE_SIZE must be at least 1")
	}
	if c.UploadDir == "" {
		return errors.New("UPLOAD_DIR is required")
	}
	if len(c.AcceptedImageTypes()) == 0 {
		return errors.New("IMAGE_TYPES must name at least one image type")
	}

	isProduction := c.Env == "production" || c.Env == "prod"
	if isProduction {
		if c.JWTSecret == "your-secret-key-change-in-production" {
			return errors.New("JWT_SECRET must be changed from the default value in production")
		}
		if len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
		if c.DBPassword == "password" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			log.Println("WARNING: DB_SSLMODE is 'disable' in production. It is highly recommended to use SSL for database connections.")
		}
	}

	return nil
}

// AcceptedImageTypes returns the configured image types as normalized MIME
// types, e.g. "png,jpg,jpeg" -> {"image/png", "image/jpeg"}.
func (c *Config) AcceptedImageTypes() map[string]bool {
	accepted := make(map[string]bool)
	for _, t := range strings.Split(c.ImageTypes, ",") {
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "png":
			accepted["image/png"] = true
		case "jpg", "jpeg":
			accepted["image/jpeg"] = true
		case "gif":
			accepted["image/gif"] = true
		case "webp":
			accepted["image/webp"] = true
		}
	}
	return accepted
}
