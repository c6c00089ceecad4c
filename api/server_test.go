package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathersdk.app/config"
	"weathersdk.app/errors"
	"weathersdk.app/models"
)

type fakeClient struct {
	report *models.WeatherReport
	err    error
}

func (f *fakeClient) GetWeather(ctx context.Context, city string) (*models.WeatherReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func testServerConfig() *config.Config {
	return &config.Config{
		Weather: config.WeatherConfig{
			APIKey:       "test-key",
			BaseURL:      "https://api.openweathermap.org/data/2.5/forecast",
			FetchTimeout: 5 * time.Second,
		},
		Cache: config.CacheConfig{
			FreshnessWindow: 10 * time.Minute,
			Backend:         config.BackendMemory,
		},
		Scheduler: config.SchedulerConfig{RefreshPeriod: 5 * time.Minute},
		Server:    config.ServerConfig{Port: 8080},
	}
}

func performRequest(server *Server, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, path, nil)
	server.GetRouter().ServeHTTP(recorder, request)
	return recorder
}

func TestGetWeatherEndpoint_Success(t *testing.T) {
	client := &fakeClient{
		report: &models.WeatherReport{
			Temperature: models.Temperature{Temp: 15.0, FeelsLike: 13.5},
			Name:        "London",
		},
	}
	server := NewServer(testServerConfig(), client)

	recorder := performRequest(server, "/api/v1/weather?city=London")

	assert.Equal(t, http.StatusOK, recorder.Code)

	var report models.WeatherReport
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &report))
	assert.Equal(t, 15.0, report.Temperature.Temp)
	assert.Equal(t, "London", report.Name)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

func TestGetWeatherEndpoint_MissingCity(t *testing.T) {
	server := NewServer(testServerConfig(), &fakeClient{})

	recorder := performRequest(server, "/api/v1/weather")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "city parameter is required")
}

func TestGetWeatherEndpoint_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"Validation", errors.NewValidationError("city must not be empty"), http.StatusBadRequest},
		{"Fetch", errors.NewFetchError("HTTP 503", nil), http.StatusBadGateway},
		{"MalformedData", errors.NewMalformedDataError("no forecast entries"), http.StatusBadGateway},
		{"Closed", errors.NewClosedError("client is shut down"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer(testServerConfig(), &fakeClient{err: tt.err})

			recorder := performRequest(server, "/api/v1/weather?city=London")

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var response models.ErrorResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
			assert.NotEmpty(t, response.Error)
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := NewServer(testServerConfig(), &fakeClient{})

	recorder := performRequest(server, "/health")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "ok")
}

func TestMetricsEndpoint(t *testing.T) {
	server := NewServer(testServerConfig(), &fakeClient{})

	recorder := performRequest(server, "/metrics")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRequestIDPropagation(t *testing.T) {
	server := NewServer(testServerConfig(), &fakeClient{report: &models.WeatherReport{}})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=London", nil)
	request.Header.Set("X-Request-ID", "caller-supplied-id")
	server.GetRouter().ServeHTTP(recorder, request)

	assert.Equal(t, "caller-supplied-id", recorder.Header().Get("X-Request-ID"))
}
