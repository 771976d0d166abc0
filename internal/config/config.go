// README: Config loader with env defaults for HTTP, Redis, DB, AI, and maps settings.
package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	HTTPAddr string `mapstructure:"CITYSCOPE_HTTP_ADDR"`
	Env      string `mapstructure:"CITYSCOPE_ENV"`

	RedisAddr     string `mapstructure:"CITYSCOPE_REDIS_ADDR"`
	RedisPassword string `mapstructure:"CITYSCOPE_REDIS_PASSWORD"`

	// DBDSN is optional; without it completed bookings are not archived.
	DBDSN string `mapstructure:"CITYSCOPE_DB_DSN"`

	// AIProvider selects the gateway backend: "together" or "gemini".
	AIProvider     string `mapstructure:"CITYSCOPE_AI_PROVIDER"`
	TogetherAPIKey string `mapstructure:"TOGETHER_API_KEY"`
	TogetherModel  string `mapstructure:"CITYSCOPE_TOGETHER_MODEL"`
	GeminiAPIKey   string `mapstructure:"GEMINI_API_KEY"`

	// BookingPageURL is the base of the booking summary page the redirect
	// link points at.
	BookingPageURL string `mapstructure:"CITYSCOPE_BOOKING_URL"`

	// GoogleMapsAPIKey is optional; without it experience suggestions are off.
	GoogleMapsAPIKey string `mapstructure:"GOOGLE_MAPS_API_KEY"`
}

// Load reads configuration from a config file if present, with environment
// variables taking effect for every key.
func Load() Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("CITYSCOPE_HTTP_ADDR", ":8080")
	viper.SetDefault("CITYSCOPE_ENV", "development")
	viper.SetDefault("CITYSCOPE_REDIS_ADDR", "localhost:6379")
	viper.SetDefault("CITYSCOPE_REDIS_PASSWORD", "")
	viper.SetDefault("CITYSCOPE_DB_DSN", "")
	viper.SetDefault("CITYSCOPE_AI_PROVIDER", "together")
	viper.SetDefault("TOGETHER_API_KEY", "")
	viper.SetDefault("CITYSCOPE_TOGETHER_MODEL", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("CITYSCOPE_BOOKING_URL", "http://localhost:8080/booking")
	viper.SetDefault("GOOGLE_MAPS_API_KEY", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("no config file found, using environment variables only")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("load config: %v", err)
	}
	return cfg
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}
