package weather

// Current holds the observed conditions at request time. Units follow the
// request: °F for temperatures, mph for wind, percent for humidity.
type Current struct {
	Temperature float64
	Humidity    float64
	WindSpeed   float64
	WindGusts   float64
	WeatherCode int
}

// Day is one daily forecast entry. Date is the provider's local date
// (YYYY-MM-DD).
type Day struct {
	Date         string
	High         float64
	Low          float64
	PrecipChance float64
	MaxWindGust  float64
	WeatherCode  int
}

// Snapshot is a forecast response as received; it is not modified after
// decoding. Days are ordered as returned by the provider.
type Snapshot struct {
	Current   Current
	Daily     []Day
	Elevation float64
}

// FirstDays returns up to n leading daily entries.
func (s Snapshot) FirstDays(n int) []Day {
	if n > len(s.Daily) {
		n = len(s.Daily)
	}
	if n < 0 {
		n = 0
	}
	return s.Daily[:n]
}
