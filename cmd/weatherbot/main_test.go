package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valinor-ai/weatherbot/internal/geocode"
	"github.com/valinor-ai/weatherbot/internal/platform/config"
	"github.com/valinor-ai/weatherbot/internal/platform/telemetry"
)

func testConfig() *config.Config {
	return &config.Config{
		Slack: config.SlackConfig{
			SigningSecret: "s3cret",
			Command:       "/weather",
			MaxSkew:       5 * time.Minute,
		},
		Weather: config.WeatherConfig{BaseURL: "https://api.open-meteo.com", Timeout: time.Second},
		Geocode: config.GeocodeConfig{Provider: "openweather", BaseURL: "https://api.openweathermap.org", Timeout: time.Second},
		Charts:  config.ChartsConfig{BaseURL: "https://quickchart.io", Width: 800, Height: 300},
	}
}

func TestBuildGeocoder(t *testing.T) {
	t.Run("no key disables lookups", func(t *testing.T) {
		assert.Nil(t, buildGeocoder(config.GeocodeConfig{Provider: "openweather"}))
	})

	t.Run("openweather", func(t *testing.T) {
		g := buildGeocoder(config.GeocodeConfig{Provider: "openweather", APIKey: "k", Timeout: time.Second})
		assert.IsType(t, &geocode.OpenWeather{}, g)
	})

	t.Run("google", func(t *testing.T) {
		g := buildGeocoder(config.GeocodeConfig{Provider: "google", APIKey: "k"})
		assert.IsType(t, &geocode.Google{}, g)
	})
}

func TestBuildSlackHandler(t *testing.T) {
	logger := telemetry.NewLogger("error", "json")

	t.Run("answers the url verification handshake", func(t *testing.T) {
		h := buildSlackHandler(testConfig(), logger)
		require.NotNil(t, h)

		req := httptest.NewRequest(http.MethodPost, "/slack/events",
			strings.NewReader(`{"type":"url_verification","challenge":"abc"}`))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"challenge":"abc"}`, rr.Body.String())
	})

	t.Run("rejects unsigned commands", func(t *testing.T) {
		h := buildSlackHandler(testConfig(), logger)

		req := httptest.NewRequest(http.MethodPost, "/slack/events",
			strings.NewReader("command=%2Fweather&text=1+2"))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("with bot token", func(t *testing.T) {
		cfg := testConfig()
		cfg.Slack.BotToken = "xoxb-test"
		assert.NotNil(t, buildSlackHandler(cfg, logger))
	})
}
