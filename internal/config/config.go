/**
 * @description
 * This file handles configuration management for the service. It uses the
 * 'viper' library to load configuration from environment variables and
 * godotenv to pick up a local .env file during development.
 */
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	ServerPort  string `mapstructure:"SERVER_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	RabbitMQURL string `mapstructure:"RABBITMQ_URL"`

	JWTSecret     string `mapstructure:"JWT_SECRET"`
	TokenTTLHours int    `mapstructure:"TOKEN_TTL_HOURS"`

	TranslateAPIURL string `mapstructure:"TRANSLATE_API_URL"`
	TranslateAPIKey string `mapstructure:"TRANSLATE_API_KEY"`

	MediaDir string `mapstructure:"MEDIA_DIR"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	RenewalJobSchedule      string `mapstructure:"RENEWAL_JOB_SCHEDULE"`
	CouponExpiryJobSchedule string `mapstructure:"COUPON_EXPIRY_JOB_SCHEDULE"`
	BannerWindowJobSchedule string `mapstructure:"BANNER_WINDOW_JOB_SCHEDULE"`
}

// TokenTTL returns the configured token lifetime.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (config Config, err error) {
	// Best effort; the file only exists in local development.
	_ = godotenv.Load()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("TOKEN_TTL_HOURS", 24)
	viper.SetDefault("MEDIA_DIR", "./media")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"https://*", "http://*"})
	viper.SetDefault("RENEWAL_JOB_SCHEDULE", "0 * * * *")
	viper.SetDefault("COUPON_EXPIRY_JOB_SCHEDULE", "30 * * * *")
	viper.SetDefault("BANNER_WINDOW_JOB_SCHEDULE", "*/10 * * * *")
	viper.AutomaticEnv()

	// Bind environment variables explicitly to ensure they appear in Unmarshal.
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("JWT_SECRET")
	_ = viper.BindEnv("TOKEN_TTL_HOURS")
	_ = viper.BindEnv("TRANSLATE_API_URL")
	_ = viper.BindEnv("TRANSLATE_API_KEY")
	_ = viper.BindEnv("MEDIA_DIR")
	_ = viper.BindEnv("CORS_ALLOWED_ORIGINS")
	_ = viper.BindEnv("RENEWAL_JOB_SCHEDULE")
	_ = viper.BindEnv("COUPON_EXPIRY_JOB_SCHEDULE")
	_ = viper.BindEnv("BANNER_WINDOW_JOB_SCHEDULE")

	if err = viper.Unmarshal(&config); err != nil {
		return config, err
	}

	if config.DatabaseURL == "" {
		return config, fmt.Errorf("DATABASE_URL is required")
	}
	if config.JWTSecret == "" {
		return config, fmt.Errorf("JWT_SECRET is required")
	}
	return config, nil
}
