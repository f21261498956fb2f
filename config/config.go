package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Search    SearchConfig    `mapstructure:"search"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	WebDir         string   `mapstructure:"web_dir"`
}

// SearchConfig holds search pipeline configuration
type SearchConfig struct {
	ScoreThreshold float64       `mapstructure:"score_threshold"`
	FetchTimeout   time.Duration `mapstructure:"fetch_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
	Currency       string        `mapstructure:"currency"`
	CatalogFile    string        `mapstructure:"catalog_file"` // empty uses the embedded catalog
	MaxExtracted   int           `mapstructure:"max_extracted"`
	MinNameLength  int           `mapstructure:"min_name_length"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP          int     `mapstructure:"per_ip"`     // requests per minute per client
	PerSource      float64 `mapstructure:"per_source"` // outbound requests per second per storefront
	PerSourceBurst int     `mapstructure:"per_source_burst"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/grocerlens/")

	// GROCERLENS_SEARCH_FETCH_TIMEOUT -> search.fetch_timeout
	v.SetEnvPrefix("GROCERLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.web_dir", "web")

	// Search defaults
	v.SetDefault("search.score_threshold", 0.18)
	v.SetDefault("search.fetch_timeout", "3500ms")
	v.SetDefault("search.user_agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 Chrome/124.0 Safari/537.36")
	v.SetDefault("search.currency", "₹")
	v.SetDefault("search.catalog_file", "")
	v.SetDefault("search.max_extracted", 10)
	v.SetDefault("search.min_name_length", 4)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)
	v.SetDefault("ratelimit.per_source", 5.0)
	v.SetDefault("ratelimit.per_source_burst", 5)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set GROCERLENS_SERVER_PORT)")
	}

	if config.Search.ScoreThreshold <= 0 || config.Search.ScoreThreshold > 1 {
		return fmt.Errorf("score threshold must be in (0, 1], got: %v", config.Search.ScoreThreshold)
	}

	if config.Search.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got: %s", config.Search.FetchTimeout)
	}

	if config.Search.MaxExtracted <= 0 {
		return fmt.Errorf("max extracted must be positive, got: %d", config.Search.MaxExtracted)
	}

	if config.RateLimit.PerIP < 0 || config.RateLimit.PerSource < 0 {
		return fmt.Errorf("rate limits cannot be negative")
	}

	if !validLogLevels[strings.ToLower(config.Log.Level)] {
		return fmt.Errorf("log level must be one of debug, info, warn, error, got: %s", config.Log.Level)
	}

	if config.Log.Format != "json" && config.Log.Format != "text" {
		return fmt.Errorf("log format must be 'json' or 'text', got: %s", config.Log.Format)
	}

	return nil
}
