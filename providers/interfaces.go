package providers

import (
	"context"

	"weathersdk.app/models"
)

// ForecastProvider defines the interface for forecast data providers
type ForecastProvider interface {
	FetchForecast(ctx context.Context, city string) (*models.ForecastResponse, error)
}
