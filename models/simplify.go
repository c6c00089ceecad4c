package models

import "weathersdk.app/errors"

// Simplify maps a raw forecast payload into the report shape exposed to
// callers. It uses the first forecast slot, matching the upstream API's
// "current conditions" convention. Pure function, no state.
func Simplify(forecast *ForecastResponse) (*WeatherReport, error) {
	if forecast == nil || len(forecast.List) == 0 {
		return nil, errors.NewMalformedDataError("no forecast entries in response")
	}

	first := forecast.List[0]

	report := &WeatherReport{
		Temperature: Temperature{
			Temp:      first.Main.Temp,
			FeelsLike: first.Main.FeelsLike,
		},
		Visibility: first.Visibility,
		Wind:       Wind{Speed: first.Wind.Speed},
		Datetime:   first.Datetime,
		Sys: SunTimes{
			Sunrise: forecast.City.Sunrise,
			Sunset:  forecast.City.Sunset,
		},
		Timezone: forecast.City.Timezone,
		Name:     forecast.City.Name,
	}

	// An empty weather array is tolerated; the upstream API omits it for
	// some slots and the original consumers handle the zero value.
	if len(first.Weather) > 0 {
		report.Weather = ConditionSummary{
			Main:        first.Weather[0].Main,
			Description: first.Weather[0].Description,
		}
	}

	return report, nil
}
