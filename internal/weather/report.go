package weather

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/valinor-ai/weatherbot/internal/coords"
)

// ForecastDays is the number of daily entries rendered in a report.
const ForecastDays = 4

const feetPerMeter = 3.28084

var num = coords.FormatFloat

// FormatConditions renders the location header and current conditions block.
func FormatConditions(snap Snapshot, label string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Weather for %s* (Elevation: %s meters / %s feet)\n\n",
		label, num(snap.Elevation), num(roundHalfUp(snap.Elevation*feetPerMeter)))
	b.WriteString("*Current Weather Conditions*\n")
	fmt.Fprintf(&b, "• Temperature: %s°F\n", num(snap.Current.Temperature))
	fmt.Fprintf(&b, "• Relative Humidity: %s%%\n", num(snap.Current.Humidity))
	fmt.Fprintf(&b, "• Wind Speed: %s mph\n", num(snap.Current.WindSpeed))
	fmt.Fprintf(&b, "• Wind Gusts: %s mph\n", num(snap.Current.WindGusts))
	fmt.Fprintf(&b, "• Conditions: %s\n", Describe(snap.Current.WeatherCode))
	return b.String()
}

// FormatForecast renders the multi-day block for the first ForecastDays entries.
func FormatForecast(snap Snapshot) string {
	days := snap.FirstDays(ForecastDays)
	blocks := make([]string, 0, len(days))
	for _, d := range days {
		blocks = append(blocks, fmt.Sprintf(
			"%s:\n• High: %s°F\n• Low: %s°F\n• Precipitation Chance: %s%%\n• Max Wind Gusts: %s mph\n• Conditions: %s",
			Weekday(d.Date, false),
			num(d.High),
			num(d.Low),
			num(d.PrecipChance),
			num(d.MaxWindGust),
			Describe(d.WeatherCode),
		))
	}
	return "\n*4-Day Forecast*\n" + strings.Join(blocks, "\n\n")
}

// Weekday names the day of a YYYY-MM-DD date, e.g. "Monday" or "Mon".
// Unparseable dates are returned unchanged.
func Weekday(date string, short bool) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	name := t.Weekday().String()
	if short {
		return name[:3]
	}
	return name
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
