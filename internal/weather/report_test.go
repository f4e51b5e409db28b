package weather_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valinor-ai/weatherbot/internal/weather"
)

func testSnapshot() weather.Snapshot {
	return weather.Snapshot{
		Elevation: 16,
		Current: weather.Current{
			Temperature: 61.3,
			Humidity:    72,
			WindSpeed:   9.8,
			WindGusts:   18.1,
			WeatherCode: 2,
		},
		Daily: []weather.Day{
			{Date: "2024-01-15", High: 62.1, Low: 50.2, PrecipChance: 10, MaxWindGust: 20.1, WeatherCode: 1},
			{Date: "2024-01-16", High: 60.4, Low: 49.8, PrecipChance: 35, MaxWindGust: 25.4, WeatherCode: 3},
			{Date: "2024-01-17", High: 58.9, Low: 48.1, PrecipChance: 80, MaxWindGust: 31, WeatherCode: 63},
			{Date: "2024-01-18", High: 57.2, Low: 47.5, PrecipChance: 55, MaxWindGust: 22.2, WeatherCode: 61},
			{Date: "2024-01-19", High: 59, Low: 48, PrecipChance: 5, MaxWindGust: 15.5, WeatherCode: 0},
		},
	}
}

func TestFormatConditions(t *testing.T) {
	got := weather.FormatConditions(testSnapshot(), "San Francisco, California, US")

	want := "*Weather for San Francisco, California, US* (Elevation: 16 meters / 52 feet)\n\n" +
		"*Current Weather Conditions*\n" +
		"• Temperature: 61.3°F\n" +
		"• Relative Humidity: 72%\n" +
		"• Wind Speed: 9.8 mph\n" +
		"• Wind Gusts: 18.1 mph\n" +
		"• Conditions: Partly cloudy\n"
	assert.Equal(t, want, got)
}

func TestFormatForecast_FirstFourDaysInOrder(t *testing.T) {
	got := weather.FormatForecast(testSnapshot())

	assert.True(t, strings.HasPrefix(got, "\n*4-Day Forecast*\nMonday:\n• High: 62.1°F\n"))
	assert.Equal(t, 4, strings.Count(got, "• High:"))
	assert.NotContains(t, got, "Friday")

	mon := strings.Index(got, "Monday:")
	tue := strings.Index(got, "Tuesday:")
	wed := strings.Index(got, "Wednesday:")
	thu := strings.Index(got, "Thursday:")
	assert.True(t, mon < tue && tue < wed && wed < thu)

	assert.Contains(t, got, "Wednesday:\n• High: 58.9°F\n• Low: 48.1°F\n• Precipitation Chance: 80%\n• Max Wind Gusts: 31 mph\n• Conditions: Moderate rain")
	assert.Contains(t, got, "• Conditions: Overcast\n\nWednesday:")
}

func TestFormatForecast_FewerDays(t *testing.T) {
	snap := testSnapshot()
	snap.Daily = snap.Daily[:2]

	got := weather.FormatForecast(snap)
	assert.Equal(t, 2, strings.Count(got, "• High:"))
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, "Monday", weather.Weekday("2024-01-15", false))
	assert.Equal(t, "Mon", weather.Weekday("2024-01-15", true))
	assert.Equal(t, "Sunday", weather.Weekday("2024-01-21", false))
	assert.Equal(t, "soon", weather.Weekday("soon", false))
}

func TestFormatConditions_ElevationRounding(t *testing.T) {
	snap := testSnapshot()
	snap.Elevation = 1609.5

	got := weather.FormatConditions(snap, "Denver")
	assert.Contains(t, got, "(Elevation: 1609.5 meters / 5281 feet)")
}
