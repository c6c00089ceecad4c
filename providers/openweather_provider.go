package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"weathersdk.app/errors"
	"weathersdk.app/models"
)

type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherMapProvider creates a forecast provider for the
// OpenWeatherMap forecast endpoint. The timeout bounds every fetch;
// a fetch that exceeds it fails like any other transport error.
func NewOpenWeatherMapProvider(apiKey, baseURL string, timeout time.Duration) ForecastProvider {
	return &OpenWeatherMapProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *OpenWeatherMapProvider) FetchForecast(ctx context.Context, city string) (*models.ForecastResponse, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", p.apiKey)
	requestURL := fmt.Sprintf("%s?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.NewFetchError("build forecast request", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewFetchError("forecast request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, p.handleHTTPError(resp.StatusCode)
	}

	var forecast models.ForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, errors.NewMalformedDataError(fmt.Sprintf("decode forecast response: %v", err))
	}

	return &forecast, nil
}

func (p *OpenWeatherMapProvider) handleHTTPError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return errors.NewFetchError("openweathermap: invalid API key", nil)
	case http.StatusNotFound:
		return errors.NewFetchError("openweathermap: city not found", nil)
	case http.StatusTooManyRequests:
		return errors.NewFetchError("openweathermap: rate limit exceeded", nil)
	case http.StatusServiceUnavailable:
		return errors.NewFetchError("openweathermap: service unavailable", nil)
	default:
		return errors.NewFetchError(fmt.Sprintf("openweathermap: HTTP %d error", statusCode), nil)
	}
}
