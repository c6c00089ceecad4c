package providers

import (
	"context"
	"log/slog"
	"time"

	"weathersdk.app/models"
)

type LoggingDecorator struct {
	wrappedProvider ForecastProvider
	providerName    string
}

// NewLoggingDecorator wraps a provider with request/response logging
func NewLoggingDecorator(provider ForecastProvider, providerName string) ForecastProvider {
	return &LoggingDecorator{
		wrappedProvider: provider,
		providerName:    providerName,
	}
}

func (d *LoggingDecorator) FetchForecast(ctx context.Context, city string) (*models.ForecastResponse, error) {
	slog.Debug("fetching forecast", "provider", d.providerName, "city", city)
	startTime := time.Now()

	forecast, err := d.wrappedProvider.FetchForecast(ctx, city)
	duration := time.Since(startTime)

	if err != nil {
		slog.Error("forecast fetch failed", "provider", d.providerName, "city", city, "error", err, "duration", duration)
		return nil, err
	}

	slog.Info("forecast fetched", "provider", d.providerName, "city", city, "entries", len(forecast.List), "duration", duration)
	return forecast, nil
}
