// Package cache implements the freshness-window cache at the heart of
// the SDK: single-flight first population, bounded-age reads, and
// stale-but-available fallback when a refresh fails.
package cache

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
	"weathersdk.app/errors"
	"weathersdk.app/metrics"
	"weathersdk.app/models"
	"weathersdk.app/providers"
)

type FreshnessCache struct {
	store    Store
	provider providers.ForecastProvider
	window   time.Duration
	metrics  *metrics.CacheMetrics
	group    singleflight.Group

	// now is swappable so tests can advance simulated time
	now func() time.Time
}

func NewFreshnessCache(store Store, provider providers.ForecastProvider, window time.Duration, cacheMetrics *metrics.CacheMetrics) *FreshnessCache {
	return &FreshnessCache{
		store:    store,
		provider: provider,
		window:   window,
		metrics:  cacheMetrics,
		now:      time.Now,
	}
}

// Get returns the freshest known forecast for key. A value younger than
// the freshness window is returned without network activity. An unseen
// key triggers exactly one blocking fetch shared by all concurrent
// callers; its failure propagates because there is nothing to fall back
// to. A stale entry triggers a blocking fetch whose transport failure is
// absorbed by returning the stale value instead.
func (c *FreshnessCache) Get(ctx context.Context, key string) (*models.ForecastResponse, error) {
	entry, exists := c.store.Load(ctx, key)
	if exists && c.now().Sub(entry.UpdatedAt) < c.window {
		c.metrics.RecordHit()
		return entry.Forecast, nil
	}
	c.metrics.RecordMiss()

	if !exists {
		result, err, _ := c.group.Do(key, func() (interface{}, error) {
			// The flight's result is shared with waiters beyond the caller
			// whose context seeded it, so it must not die with that caller.
			// The provider enforces its own fetch timeout.
			fctx := context.WithoutCancel(ctx)

			// A concurrent flight may have populated the key while this
			// caller was waiting on the group.
			if populated, ok := c.store.Load(fctx, key); ok {
				return populated.Forecast, nil
			}
			return c.fetchAndStore(fctx, key)
		})
		if err != nil {
			return nil, err
		}
		return result.(*models.ForecastResponse), nil
	}

	forecast, err := c.sharedFetch(ctx, key)
	if err != nil {
		// Malformed payloads always surface; caching or masking them
		// would be worse than failing.
		if errors.IsMalformedDataError(err) {
			return nil, err
		}
		c.metrics.RecordStaleFallback()
		slog.Warn("refresh failed, serving stale forecast",
			"key", key, "age", c.now().Sub(entry.UpdatedAt), "error", err)
		return entry.Forecast, nil
	}
	return forecast, nil
}

// Put unconditionally replaces the entry for key with a fresh timestamp.
// This is the background refresh write path.
func (c *FreshnessCache) Put(ctx context.Context, key string, forecast *models.ForecastResponse) {
	if forecast == nil {
		return
	}
	c.store.Put(ctx, key, &Entry{Forecast: forecast, UpdatedAt: c.now()})
}

// Peek returns whatever is currently cached for key without ever
// triggering a fetch.
func (c *FreshnessCache) Peek(ctx context.Context, key string) (*models.ForecastResponse, bool) {
	entry, exists := c.store.Load(ctx, key)
	if !exists {
		return nil, false
	}
	return entry.Forecast, true
}

// refreshSkipTolerance absorbs scheduler timer jitter: a periodic run
// firing a few milliseconds early must still refresh rather than skip
// the entire period.
const refreshSkipTolerance = time.Second

// Refresh performs one fetch-and-store cycle for key unless the current
// entry is younger than minAge (less a small jitter tolerance); pass
// zero to force the fetch. Used by the background scheduler, which
// swallows the returned error. The skip keeps the immediate first run
// from duplicating the synchronous fetch that just populated the key.
func (c *FreshnessCache) Refresh(ctx context.Context, key string, minAge time.Duration) error {
	if entry, ok := c.store.Load(ctx, key); ok && c.now().Sub(entry.UpdatedAt) < minAge-refreshSkipTolerance {
		return nil
	}
	if _, err := c.sharedFetch(ctx, key); err != nil {
		c.metrics.RecordRefreshFailure()
		return err
	}
	c.metrics.RecordRefreshSuccess()
	return nil
}

// sharedFetch collapses racing fetches for the same key into one flight
// whose result all callers share. The flight runs on a context detached
// from the seeding caller's cancellation so one caller's disconnect
// cannot fail the rest.
func (c *FreshnessCache) sharedFetch(ctx context.Context, key string) (*models.ForecastResponse, error) {
	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.fetchAndStore(context.WithoutCancel(ctx), key)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.ForecastResponse), nil
}

// SetClock overrides the cache's time source. Intended for tests.
func (c *FreshnessCache) SetClock(now func() time.Time) {
	c.now = now
}

func (c *FreshnessCache) fetchAndStore(ctx context.Context, key string) (*models.ForecastResponse, error) {
	start := time.Now()
	forecast, err := c.provider.FetchForecast(ctx, key)
	c.metrics.ObserveFetchDuration(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	// A payload without forecast slots never enters the cache; the entry
	// invariant is "exists iff at least one usable fetch completed".
	if len(forecast.List) == 0 {
		return nil, errors.NewMalformedDataError("no forecast entries in response")
	}

	c.store.Put(ctx, key, &Entry{Forecast: forecast, UpdatedAt: c.now()})
	return forecast, nil
}
