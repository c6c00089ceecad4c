// Package sdk exposes the public weather SDK surface: a per-credential
// client with cached, background-refreshed forecasts, and a registry
// deduplicating clients by credential.
package sdk

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	"weathersdk.app/cache"
	"weathersdk.app/config"
	"weathersdk.app/errors"
	"weathersdk.app/metrics"
	"weathersdk.app/models"
	"weathersdk.app/providers"
	"weathersdk.app/scheduler"
)

// Client is the SDK entry point. Safe for concurrent use. Obtain one
// via NewClient or through a Registry, and release its background
// resources with Shutdown.
type Client struct {
	config    *config.Config
	cache     *cache.FreshnessCache
	scheduler *scheduler.RefreshScheduler
	closed    atomic.Bool
}

// NewClient creates a client from the given configuration
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.NewValidationError("config must not be nil")
	}
	if strings.TrimSpace(cfg.Weather.APIKey) == "" {
		return nil, errors.NewValidationError("API key must not be empty")
	}

	store, err := newStore(cfg)
	if err != nil {
		return nil, errors.NewConfigurationError("create cache store", err)
	}

	var provider providers.ForecastProvider = providers.NewOpenWeatherMapProvider(
		cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.FetchTimeout)
	provider = providers.NewBreakerDecorator(provider, "openweathermap")
	provider = providers.NewLoggingDecorator(provider, "openweathermap")

	return newClient(cfg, store, provider), nil
}

func newClient(cfg *config.Config, store cache.Store, provider providers.ForecastProvider) *Client {
	cacheMetrics := metrics.NewCacheMetrics(cfg.Cache.Backend)

	return &Client{
		config:    cfg,
		cache:     cache.NewFreshnessCache(store, provider, cfg.Cache.FreshnessWindow, cacheMetrics),
		scheduler: scheduler.NewRefreshScheduler(cfg.Scheduler.RefreshPeriod),
	}
}

func newStore(cfg *config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		return cache.NewRedisStore(&cfg.Cache.Redis)
	default:
		return cache.NewMemoryStore(), nil
	}
}

// GetWeather returns the simplified forecast for city. The first call
// for a city schedules its periodic background refresh; subsequent calls
// are served from the cache whenever its entry is younger than the
// freshness window.
func (c *Client) GetWeather(ctx context.Context, city string) (*models.WeatherReport, error) {
	if c.closed.Load() {
		return nil, errors.NewClosedError("client is shut down")
	}

	city = strings.TrimSpace(city)
	if city == "" {
		return nil, errors.NewValidationError("city must not be empty")
	}

	c.scheduler.EnsureScheduled(city, c.refresh)

	forecast, err := c.cache.Get(ctx, city)
	if err != nil {
		return nil, err
	}

	return models.Simplify(forecast)
}

// refresh is the background refresh path: fetch and replace the cached
// entry, swallowing failures so the schedule keeps firing.
func (c *Client) refresh(city string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.config.Weather.FetchTimeout)
	defer cancel()

	if err := c.cache.Refresh(ctx, city, c.config.Scheduler.RefreshPeriod); err != nil {
		slog.Warn("background refresh failed", "city", city, "error", err)
	}
}

// Shutdown cancels all background refresh jobs. Idempotent. GetWeather
// calls made after Shutdown fail with a closed error.
func (c *Client) Shutdown() {
	if c.closed.Swap(true) {
		return
	}
	c.scheduler.CancelAll()
	slog.Info("weather sdk client shut down")
}

// Closed reports whether Shutdown has been called.
func (c *Client) Closed() bool {
	return c.closed.Load()
}
