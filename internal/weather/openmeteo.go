package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/valinor-ai/weatherbot/internal/coords"
	"github.com/valinor-ai/weatherbot/internal/platform/upstream"
)

const defaultOpenMeteoBaseURL = "https://api.open-meteo.com"

var ErrMalformedForecast = errors.New("malformed forecast response")

// OpenMeteoClient fetches current conditions and daily forecasts from
// Open-Meteo in imperial units.
type OpenMeteoClient struct {
	baseURL string
	up      *upstream.Client
}

// NewOpenMeteoClient creates a client. An empty baseURL selects the public API.
func NewOpenMeteoClient(baseURL string, httpClient *http.Client) *OpenMeteoClient {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultOpenMeteoBaseURL
	}
	return &OpenMeteoClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		up:      upstream.New("open-meteo", httpClient),
	}
}

type openMeteoResponse struct {
	Elevation float64 `json:"elevation"`
	Current   *struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		WindGusts   float64 `json:"wind_gusts_10m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
	Daily *struct {
		Time         []string  `json:"time"`
		High         []float64 `json:"temperature_2m_max"`
		Low          []float64 `json:"temperature_2m_min"`
		PrecipChance []float64 `json:"precipitation_probability_max"`
		MaxWindGust  []float64 `json:"wind_gusts_10m_max"`
		WeatherCode  []int     `json:"weather_code"`
	} `json:"daily"`
}

// Forecast fetches the snapshot for c.
func (c *OpenMeteoClient) Forecast(ctx context.Context, at coords.Coordinates) (Snapshot, error) {
	values := url.Values{}
	values.Set("latitude", coords.FormatFloat(at.Lat))
	values.Set("longitude", coords.FormatFloat(at.Lon))
	values.Set("current", "temperature_2m,relative_humidity_2m,wind_speed_10m,wind_gusts_10m,weather_code")
	values.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_probability_max,wind_gusts_10m_max,weather_code")
	values.Set("timezone", "auto")
	values.Set("temperature_unit", "fahrenheit")
	values.Set("wind_speed_unit", "mph")

	body, err := c.up.GetBody(ctx, c.baseURL+"/v1/forecast?"+values.Encode())
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetching forecast: %w", err)
	}

	var payload openMeteoResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return Snapshot{}, fmt.Errorf("decoding forecast: %w", err)
	}
	if payload.Current == nil || payload.Daily == nil {
		return Snapshot{}, fmt.Errorf("%w: missing current or daily section", ErrMalformedForecast)
	}

	snap := Snapshot{
		Current: Current{
			Temperature: payload.Current.Temperature,
			Humidity:    payload.Current.Humidity,
			WindSpeed:   payload.Current.WindSpeed,
			WindGusts:   payload.Current.WindGusts,
			WeatherCode: payload.Current.WeatherCode,
		},
		Elevation: payload.Elevation,
	}

	d := payload.Daily
	n := minLen(len(d.Time), len(d.High), len(d.Low), len(d.PrecipChance), len(d.MaxWindGust), len(d.WeatherCode))
	snap.Daily = make([]Day, 0, n)
	for i := 0; i < n; i++ {
		snap.Daily = append(snap.Daily, Day{
			Date:         d.Time[i],
			High:         d.High[i],
			Low:          d.Low[i],
			PrecipChance: d.PrecipChance[i],
			MaxWindGust:  d.MaxWindGust[i],
			WeatherCode:  d.WeatherCode[i],
		})
	}

	return snap, nil
}

func minLen(lengths ...int) int {
	m := lengths[0]
	for _, l := range lengths[1:] {
		if l < m {
			m = l
		}
	}
	return m
}
