package providers

import (
	"context"
	stderrors "errors"

	"github.com/sony/gobreaker"
	"weathersdk.app/errors"
	"weathersdk.app/models"
)

type BreakerDecorator struct {
	wrappedProvider ForecastProvider
	breaker         *gobreaker.CircuitBreaker
}

// NewBreakerDecorator wraps a provider with a circuit breaker so a
// misbehaving upstream stops consuming fetch slots. An open circuit
// surfaces as a fetch error; the cache's stale-fallback policy applies
// to it like any other fetch failure.
func NewBreakerDecorator(provider ForecastProvider, name string) ForecastProvider {
	return &BreakerDecorator{
		wrappedProvider: provider,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: name,
		}),
	}
}

func (d *BreakerDecorator) FetchForecast(ctx context.Context, city string) (*models.ForecastResponse, error) {
	result, err := d.breaker.Execute(func() (interface{}, error) {
		return d.wrappedProvider.FetchForecast(ctx, city)
	})
	if err != nil {
		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.NewFetchError("forecast circuit breaker open", err)
		}
		return nil, err
	}

	forecast, ok := result.(*models.ForecastResponse)
	if !ok {
		return nil, errors.NewFetchError("unexpected result type from circuit breaker", nil)
	}
	return forecast, nil
}
