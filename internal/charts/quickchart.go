// Package charts builds QuickChart image links for forecast series.
package charts

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const defaultBaseURL = "https://quickchart.io"

var (
	ErrEmptySeries    = errors.New("chart series is empty")
	ErrSeriesMismatch = errors.New("chart series lengths differ")
)

// Builder renders Chart.js configurations into QuickChart URLs.
type Builder struct {
	baseURL string
	width   int
	height  int
}

// NewBuilder creates a Builder. Zero values select the public endpoint and an
// 800x300 image.
func NewBuilder(baseURL string, width, height int) *Builder {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 300
	}
	return &Builder{
		baseURL: strings.TrimRight(baseURL, "/"),
		width:   width,
		height:  height,
	}
}

type chartConfig struct {
	Type    string       `json:"type"`
	Data    chartData    `json:"data"`
	Options chartOptions `json:"options"`
}

type chartData struct {
	Labels   []string  `json:"labels"`
	Datasets []dataset `json:"datasets"`
}

type dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderDash      []int     `json:"borderDash,omitempty"`
}

type chartOptions struct {
	Responsive bool         `json:"responsive"`
	Plugins    chartPlugins `json:"plugins"`
	Scales     chartScales  `json:"scales"`
}

type chartPlugins struct {
	Title chartTitle `json:"title"`
}

type chartTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type chartScales struct {
	Y yAxis `json:"y"`
}

type yAxis struct {
	Min   *float64   `json:"min,omitempty"`
	Max   *float64   `json:"max,omitempty"`
	Title chartTitle `json:"title"`
}

// Temperature builds a line chart of daily highs and lows.
func (b *Builder) Temperature(labels []string, highs, lows []float64) (string, error) {
	if err := checkSeries(labels, highs, lows); err != nil {
		return "", fmt.Errorf("temperature chart: %w", err)
	}
	return b.render(chartConfig{
		Type: "line",
		Data: chartData{
			Labels: labels,
			Datasets: []dataset{
				{Label: "High", Data: highs, BorderColor: "rgb(255, 99, 132)", BackgroundColor: "rgba(255, 99, 132, 0.5)"},
				{Label: "Low", Data: lows, BorderColor: "rgb(54, 162, 235)", BackgroundColor: "rgba(54, 162, 235, 0.5)"},
			},
		},
		Options: chartOptions{
			Responsive: true,
			Plugins:    chartPlugins{Title: chartTitle{Display: true, Text: "4-Day Temperature Forecast"}},
			Scales:     chartScales{Y: yAxis{Title: chartTitle{Display: true, Text: "Temperature (°F)"}}},
		},
	})
}

// Precipitation builds a dashed line chart of daily precipitation chance on
// a fixed 0-100 axis.
func (b *Builder) Precipitation(labels []string, chances []float64) (string, error) {
	if err := checkSeries(labels, chances); err != nil {
		return "", fmt.Errorf("precipitation chart: %w", err)
	}
	lo, hi := 0.0, 100.0
	return b.render(chartConfig{
		Type: "line",
		Data: chartData{
			Labels: labels,
			Datasets: []dataset{{
				Label:           "Precipitation Chance",
				Data:            chances,
				BorderColor:     "rgb(75, 192, 192)",
				BackgroundColor: "rgba(75, 192, 192, 0.5)",
				BorderDash:      []int{5, 5},
			}},
		},
		Options: chartOptions{
			Responsive: true,
			Plugins:    chartPlugins{Title: chartTitle{Display: true, Text: "4-Day Precipitation Forecast"}},
			Scales: chartScales{Y: yAxis{
				Min:   &lo,
				Max:   &hi,
				Title: chartTitle{Display: true, Text: "Precipitation Chance (%)"},
			}},
		},
	})
}

func (b *Builder) render(cfg chartConfig) (string, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding chart config: %w", err)
	}
	return b.baseURL + "/chart?c=" + url.QueryEscape(string(raw)) +
		"&width=" + strconv.Itoa(b.width) + "&height=" + strconv.Itoa(b.height), nil
}

func checkSeries(labels []string, series ...[]float64) error {
	if len(labels) == 0 {
		return ErrEmptySeries
	}
	for _, s := range series {
		if len(s) != len(labels) {
			return ErrSeriesMismatch
		}
	}
	return nil
}
