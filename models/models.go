// Package models defines the data structures exchanged with the forecast API
package models

// ForecastResponse represents the raw 5-day forecast payload returned by
// the OpenWeatherMap forecast endpoint. Only fields the SDK consumes are
// declared; everything else in the payload is ignored on decode.
type ForecastResponse struct {
	List []ForecastEntry `json:"list"`
	City ForecastCity    `json:"city"`
}

// ForecastEntry is a single forecast slot in the list
type ForecastEntry struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Visibility int `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Datetime int64 `json:"dt"`
}

// ForecastCity carries city-level metadata from the forecast payload
type ForecastCity struct {
	Name     string `json:"name"`
	Timezone int    `json:"timezone"`
	Sunrise  int64  `json:"sunrise"`
	Sunset   int64  `json:"sunset"`
}

// WeatherReport is the simplified weather shape returned to SDK callers
type WeatherReport struct {
	Weather     ConditionSummary `json:"weather"`
	Temperature Temperature      `json:"temperature"`
	Visibility  int              `json:"visibility"`
	Wind        Wind             `json:"wind"`
	Datetime    int64            `json:"datetime"`
	Sys         SunTimes         `json:"sys"`
	Timezone    int              `json:"timezone"`
	Name        string           `json:"name"`
}

// ConditionSummary describes the leading weather condition
type ConditionSummary struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// Temperature holds actual and perceived temperature
type Temperature struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
}

// Wind holds wind measurements
type Wind struct {
	Speed float64 `json:"speed"`
}

// SunTimes holds sunrise and sunset as unix timestamps
type SunTimes struct {
	Sunrise int64 `json:"sunrise"`
	Sunset  int64 `json:"sunset"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
