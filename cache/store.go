package cache

import (
	"context"
	"time"

	"weathersdk.app/models"
)

// Entry is a cached forecast together with the moment it was fetched.
// Entries are replaced wholesale, never mutated in place.
type Entry struct {
	Forecast  *models.ForecastResponse `json:"forecast"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// Store defines the key-to-entry storage underneath the freshness cache.
// Put is a last-write-wins replacement by completion order: an older
// in-flight fetch completing after a newer one overwrites it. The
// freshness window bounds how long such a regression can be served.
type Store interface {
	Load(ctx context.Context, key string) (*Entry, bool)
	Put(ctx context.Context, key string, entry *Entry)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
}
