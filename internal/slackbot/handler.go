// Package slackbot serves the Slack webhook: request authentication, payload
// dispatch and weather replies.
package slackbot

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/valinor-ai/weatherbot/internal/coords"
	"github.com/valinor-ai/weatherbot/internal/geocode"
	"github.com/valinor-ai/weatherbot/internal/platform/middleware"
	"github.com/valinor-ai/weatherbot/internal/weather"
)

const maxBodyBytes = 1 << 20

// WeatherFetcher returns a forecast for a location.
type WeatherFetcher interface {
	Forecast(ctx context.Context, at coords.Coordinates) (weather.Snapshot, error)
}

// ChartBuilder renders forecast chart links.
type ChartBuilder interface {
	Temperature(labels []string, highs, lows []float64) (string, error)
	Precipitation(labels []string, chances []float64) (string, error)
}

// Poster delivers a reply to a conversation out of band.
type Poster interface {
	Post(ctx context.Context, channelID, userID string, msg ReplyMessage) error
}

// Options configures a Handler.
type Options struct {
	Command   string
	BotUserID string
	Weather   WeatherFetcher
	// Geocoder is optional; without it locations are labelled by coordinates.
	Geocoder geocode.Reverser
	Charts   ChartBuilder
	// Poster is optional; without it event replies are only returned in the
	// HTTP response.
	Poster Poster
	Logger *slog.Logger
}

// Handler handles POST /slack/events.
type Handler struct {
	auth      *Authenticator
	command   string
	botUserID string
	weather   WeatherFetcher
	geocoder  geocode.Reverser
	charts    ChartBuilder
	poster    Poster
	logger    *slog.Logger
}

// NewHandler creates a Slack webhook handler.
func NewHandler(auth *Authenticator, opts Options) *Handler {
	command := strings.TrimSpace(opts.Command)
	if command == "" {
		command = "/weather"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		auth:      auth,
		command:   command,
		botUserID: strings.TrimSpace(opts.BotUserID),
		weather:   opts.Weather,
		geocoder:  opts.Geocoder,
		charts:    opts.Charts,
		poster:    opts.Poster,
		logger:    logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeText(w, http.StatusBadRequest, "Bad Request")
		return
	}

	payload := Decode(body)

	// The handshake is answered before authentication.
	if hs, ok := payload.(Handshake); ok {
		writeJSON(w, http.StatusOK, map[string]string{"challenge": hs.Challenge})
		return
	}

	if err := h.auth.Authenticate(r.Header, body); err != nil {
		h.logger.Warn("slack request rejected",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeText(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	switch p := payload.(type) {
	case SlashCommand:
		h.handleCommand(w, r, p)
	case EventCallback:
		h.handleEvent(w, r, p)
	default:
		writeText(w, http.StatusOK, "OK")
	}
}

func (h *Handler) handleCommand(w http.ResponseWriter, r *http.Request, cmd SlashCommand) {
	if cmd.Command != h.command {
		writeText(w, http.StatusBadRequest, "Command not recognized")
		return
	}

	if strings.EqualFold(strings.TrimSpace(cmd.Text), "help") {
		writeJSON(w, http.StatusOK, HelpMessage(h.command))
		return
	}

	at, ok := coords.Parse(cmd.Text)
	if !ok {
		writeJSON(w, http.StatusOK, Ephemeral(commandGuidance(h.command)))
		return
	}

	writeJSON(w, http.StatusOK, h.forecastReply(r.Context(), at))
}

func (h *Handler) handleEvent(w http.ResponseWriter, r *http.Request, ev EventCallback) {
	// Replies posted by bots, including this one, would loop.
	if ev.BotID != "" {
		writeText(w, http.StatusOK, "OK")
		return
	}
	if !h.addressed(ev) {
		writeText(w, http.StatusOK, "OK")
		return
	}

	var reply ReplyMessage
	if strings.Contains(strings.ToLower(ev.Text), "help") {
		reply = HelpMessage(h.command)
	} else if at, ok := coords.Parse(ev.Text); !ok {
		reply = Ephemeral(eventGuidanceText)
	} else {
		reply = h.forecastReply(r.Context(), at)
	}

	h.post(r.Context(), ev, reply)
	writeJSON(w, http.StatusOK, reply)
}

// addressed reports whether the event is a direct message or mentions the bot.
func (h *Handler) addressed(ev EventCallback) bool {
	if ev.EventType == "app_mention" || ev.ChannelType == "im" {
		return true
	}
	return h.botUserID != "" && strings.Contains(ev.Text, "<@"+h.botUserID+">")
}

func (h *Handler) post(ctx context.Context, ev EventCallback, reply ReplyMessage) {
	if h.poster == nil || ev.ChannelID == "" {
		return
	}
	if err := h.poster.Post(ctx, ev.ChannelID, ev.User, reply); err != nil {
		h.logger.Error("posting slack reply",
			"error", err,
			"channel", ev.ChannelID,
			"request_id", middleware.GetRequestID(ctx),
		)
	}
}

// forecastReply fetches weather and location concurrently and composes the
// reply text. Failures of the location lookup fall back to a coordinate label.
func (h *Handler) forecastReply(ctx context.Context, at coords.Coordinates) ReplyMessage {
	var (
		snap  weather.Snapshot
		label string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := h.weather.Forecast(gctx, at)
		if err != nil {
			return err
		}
		snap = s
		return nil
	})
	if h.geocoder != nil {
		g.Go(func() error {
			l, err := h.geocoder.Reverse(gctx, at)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					h.logger.Warn("reverse geocoding failed", "error", err)
				}
				return nil
			}
			label = l
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.logger.Error("fetching weather data",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		return Ephemeral(apologyText)
	}

	if label == "" {
		label = at.Label()
	}

	text := weather.FormatConditions(snap, label) + weather.FormatForecast(snap)
	links, err := h.chartLinks(snap)
	if err != nil {
		h.logger.Warn("building forecast charts", "error", err)
	} else {
		text += links
	}
	return InChannel(text)
}

func (h *Handler) chartLinks(snap weather.Snapshot) (string, error) {
	if h.charts == nil {
		return "", errors.New("chart builder not configured")
	}

	days := snap.FirstDays(weather.ForecastDays)
	labels := make([]string, len(days))
	highs := make([]float64, len(days))
	lows := make([]float64, len(days))
	chances := make([]float64, len(days))
	for i, d := range days {
		labels[i] = weather.Weekday(d.Date, true)
		highs[i] = d.High
		lows[i] = d.Low
		chances[i] = d.PrecipChance
	}

	tempURL, err := h.charts.Temperature(labels, highs, lows)
	if err != nil {
		return "", err
	}
	precipURL, err := h.charts.Precipitation(labels, chances)
	if err != nil {
		return "", err
	}

	return "\n\n*Temperature Forecast*\n<" + tempURL + "|View Temperature Chart>\n\n" +
		"*Precipitation Forecast*\n<" + precipURL + "|View Precipitation Chart>", nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}
