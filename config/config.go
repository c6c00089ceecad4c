package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weathersdk.app/errors"
)

// Config represents the SDK configuration structure
type Config struct {
	Weather   WeatherConfig   `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	Scheduler SchedulerConfig `split_words:"true"`
	Server    ServerConfig    `split_words:"true"`
}

// WeatherConfig contains settings for the OpenWeatherMap forecast API
type WeatherConfig struct {
	APIKey       string        `envconfig:"WEATHER_API_KEY" required:"true"`
	BaseURL      string        `envconfig:"WEATHER_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5/forecast"`
	FetchTimeout time.Duration `envconfig:"WEATHER_FETCH_TIMEOUT" default:"10s"`
}

// CacheConfig contains freshness policy and cache backend settings
type CacheConfig struct {
	FreshnessWindow time.Duration `envconfig:"CACHE_FRESHNESS_WINDOW" default:"10m"`
	Backend         string        `envconfig:"CACHE_BACKEND" default:"memory"`
	Redis           RedisConfig   `split_words:"true"`
}

// RedisConfig contains connection settings for the Redis cache backend
type RedisConfig struct {
	Addr         string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"REDIS_PASSWORD" default:""`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

// SchedulerConfig contains settings for the background refresh scheduler
type SchedulerConfig struct {
	RefreshPeriod time.Duration `envconfig:"REFRESH_PERIOD" default:"5m"`
}

// ServerConfig contains HTTP server configuration for the demo server
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// Cache backend identifiers
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// LoadConfig loads and validates SDK configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks weather API configuration
func (w *WeatherConfig) Validate() error {
	if strings.TrimSpace(w.APIKey) == "" {
		return errors.NewConfigurationError("WEATHER_API_KEY cannot be empty", nil)
	}
	if !strings.HasPrefix(w.BaseURL, "http://") && !strings.HasPrefix(w.BaseURL, "https://") {
		return errors.NewConfigurationError("WEATHER_API_BASE_URL must start with http:// or https://", nil)
	}
	if w.FetchTimeout <= 0 {
		return errors.NewConfigurationError("WEATHER_FETCH_TIMEOUT must be positive", nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	if c.FreshnessWindow <= 0 {
		return errors.NewConfigurationError("CACHE_FRESHNESS_WINDOW must be positive", nil)
	}
	if c.Backend != BackendMemory && c.Backend != BackendRedis {
		return errors.NewConfigurationError("CACHE_BACKEND must be 'memory' or 'redis'", nil)
	}
	if c.Backend == BackendRedis && c.Redis.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when CACHE_BACKEND is 'redis'", nil)
	}
	return nil
}

// Validate checks scheduler configuration
func (s *SchedulerConfig) Validate() error {
	if s.RefreshPeriod <= 0 {
		return errors.NewConfigurationError("REFRESH_PERIOD must be positive", nil)
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}
