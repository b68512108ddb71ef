package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`

	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	FetchTimeoutSeconds int    `mapstructure:"FETCH_TIMEOUT_SECONDS"`
	MaxRedirects        int    `mapstructure:"MAX_REDIRECTS"`
	UserAgent           string `mapstructure:"USER_AGENT"`

	DataDir  string `mapstructure:"DATA_DIR"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
}

// Load reads configuration from the environment, after loading a local
// .env file when one exists.
func Load() (*Config, error) {
	// Missing .env files are fine; the environment still applies.
	_ = godotenv.Load(".env.development")
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8082")
	viper.SetDefault("GIN_MODE", "release")
	viper.SetDefault("MONGO_URI", "")
	viper.SetDefault("MONGO_DATABASE", "pagescope")
	viper.SetDefault("FETCH_TIMEOUT_SECONDS", 10)
	viper.SetDefault("MAX_REDIRECTS", 5)
	viper.SetDefault("USER_AGENT", "")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
