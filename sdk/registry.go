package sdk

import (
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
	"weathersdk.app/config"
	"weathersdk.app/errors"
)

// Registry hands out one Client per credential. It is an explicit
// object the application owns and passes around, not a hidden global:
// construct it once, close it on the way out.
type Registry struct {
	base config.Config // template applied to every client; APIKey is overridden per credential

	mu      sync.Mutex
	clients map[string]*Client
	group   singleflight.Group
}

func NewRegistry(base *config.Config) *Registry {
	return &Registry{
		base:    *base,
		clients: make(map[string]*Client),
	}
}

// GetClient returns the client for apiKey, constructing it on first
// request. Concurrent first requests for the same credential are
// deduplicated: exactly one client is constructed and shared.
func (r *Registry) GetClient(apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.NewValidationError("API key must not be empty")
	}

	result, err, _ := r.group.Do(apiKey, func() (interface{}, error) {
		r.mu.Lock()
		existing, exists := r.clients[apiKey]
		r.mu.Unlock()
		if exists && !existing.Closed() {
			return existing, nil
		}

		cfg := r.base
		cfg.Weather.APIKey = apiKey

		client, err := NewClient(&cfg)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.clients[apiKey] = client
		r.mu.Unlock()
		return client, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Client), nil
}

// DeleteClient shuts down and removes the client for apiKey. Returns
// true when a client existed.
func (r *Registry) DeleteClient(apiKey string) bool {
	r.mu.Lock()
	client, exists := r.clients[apiKey]
	delete(r.clients, apiKey)
	r.mu.Unlock()

	if !exists {
		return false
	}
	client.Shutdown()
	return true
}

// Close shuts down every client the registry owns. Idempotent.
func (r *Registry) Close() {
	r.mu.Lock()
	clients := r.clients
	r.clients = make(map[string]*Client)
	r.mu.Unlock()

	for _, client := range clients {
		client.Shutdown()
	}
}
