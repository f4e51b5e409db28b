package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/valinor-ai/weatherbot/internal/charts"
	"github.com/valinor-ai/weatherbot/internal/geocode"
	"github.com/valinor-ai/weatherbot/internal/platform/config"
	"github.com/valinor-ai/weatherbot/internal/platform/server"
	"github.com/valinor-ai/weatherbot/internal/platform/telemetry"
	"github.com/valinor-ai/weatherbot/internal/slackbot"
	"github.com/valinor-ai/weatherbot/internal/weather"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logging
	logger := telemetry.NewLogger(cfg.Log.Level, cfg.Log.Format)
	telemetry.SetDefault(logger)

	slog.Info("weatherbot starting",
		"port", cfg.Server.Port,
		"command", cfg.Slack.Command,
		"geocoder", cfg.Geocode.Provider,
	)

	slackHandler := buildSlackHandler(cfg, logger)

	srv := server.New(cfg.Addr(), server.Dependencies{
		SlackHandler: slackHandler,
		Logger:       logger,
	})

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("server ready", "addr", cfg.Addr())
	return srv.Start(ctx)
}

func buildSlackHandler(cfg *config.Config, logger *slog.Logger) *slackbot.Handler {
	opts := slackbot.Options{
		Command:   cfg.Slack.Command,
		BotUserID: cfg.Slack.BotUserID,
		Weather: weather.NewOpenMeteoClient(cfg.Weather.BaseURL, &http.Client{
			Timeout: cfg.Weather.Timeout,
		}),
		Geocoder: buildGeocoder(cfg.Geocode),
		Charts:   charts.NewBuilder(cfg.Charts.BaseURL, cfg.Charts.Width, cfg.Charts.Height),
		Logger:   logger,
	}

	if token := strings.TrimSpace(cfg.Slack.BotToken); token != "" {
		opts.Poster = slackbot.NewSlackPoster(token, cfg.Slack.APIBaseURL, nil)
	} else {
		slog.Info("slack bot token not set, event replies are returned in the response only")
	}

	return slackbot.NewHandler(slackbot.NewAuthenticator(cfg.Slack.SigningSecret, cfg.Slack.MaxSkew), opts)
}

// buildGeocoder returns nil when no key is configured, in which case
// locations are labelled by their coordinates.
func buildGeocoder(cfg config.GeocodeConfig) geocode.Reverser {
	if strings.TrimSpace(cfg.APIKey) == "" {
		slog.Warn("geocoding api key not set, location names disabled")
		return nil
	}
	switch cfg.Provider {
	case "google":
		return geocode.NewGoogle(cfg.APIKey)
	default:
		return geocode.NewOpenWeather(cfg.BaseURL, cfg.APIKey, &http.Client{Timeout: cfg.Timeout})
	}
}
