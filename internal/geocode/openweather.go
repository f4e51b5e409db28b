package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/valinor-ai/weatherbot/internal/coords"
	"github.com/valinor-ai/weatherbot/internal/platform/upstream"
)

const defaultOpenWeatherBaseURL = "https://api.openweathermap.org"

// OpenWeather uses the OpenWeatherMap reverse geocoding API.
type OpenWeather struct {
	baseURL string
	apiKey  string
	up      *upstream.Client
}

func NewOpenWeather(baseURL, apiKey string, httpClient *http.Client) *OpenWeather {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultOpenWeatherBaseURL
	}
	return &OpenWeather{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		up:      upstream.New("openweather-geo", httpClient),
	}
}

func (g *OpenWeather) Reverse(ctx context.Context, at coords.Coordinates) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingKey
	}

	values := url.Values{}
	values.Set("lat", coords.FormatFloat(at.Lat))
	values.Set("lon", coords.FormatFloat(at.Lon))
	values.Set("limit", "1")
	values.Set("appid", g.apiKey)

	body, err := g.up.GetBody(ctx, g.baseURL+"/geo/1.0/reverse?"+values.Encode())
	if err != nil {
		return "", fmt.Errorf("reverse geocoding: %w", err)
	}

	var results []struct {
		Name    string `json:"name"`
		State   string `json:"state"`
		Country string `json:"country"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(results) == 0 {
		return "", ErrNoResults
	}

	label := joinPlace(results[0].Name, results[0].State, results[0].Country)
	if label == "" {
		return "", ErrNoResults
	}
	return label, nil
}
