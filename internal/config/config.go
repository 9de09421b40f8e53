package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server     Server     `mapstructure:"server"`
	Database   Database   `mapstructure:"database"`
	Logger     Logger     `mapstructure:"logger"`
	MarketData MarketData `mapstructure:"market_data"`
	Notify     Notify     `mapstructure:"notify"`
	Backup     Backup     `mapstructure:"backup"`
}

// Server holds the configuration for the API server.
type Server struct {
	Port        int      `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// Database holds the configuration for the local journal database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MarketData holds the configuration for the public quote API client.
type MarketData struct {
	BaseURL        string  `mapstructure:"base_url"`
	Currency       string  `mapstructure:"currency"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Notify holds the configuration for the trade-closed webhook.
type Notify struct {
	WebhookURL string `mapstructure:"webhook_url"`
	Username   string `mapstructure:"username"`
}

// Backup holds the configuration for JSON snapshot backups.
type Backup struct {
	Dir string `mapstructure:"dir"`
}

// LoadConfig reads configuration from file or environment variables.
// A missing config file is not an error: the journal runs fine on defaults.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("server.port", 8970)
	viper.SetDefault("server.cors_origins", []string{"*"})
	viper.SetDefault("database.dsn", "journal.db")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("market_data.base_url", "https://api.coingecko.com/api/v3")
	viper.SetDefault("market_data.currency", "usd")
	viper.SetDefault("market_data.rate_limit", 2) // requests per second
	viper.SetDefault("market_data.rate_limit_burst", 2)
	viper.SetDefault("notify.username", "TradeJournal")
	viper.SetDefault("backup.dir", "backups")

	err = viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
