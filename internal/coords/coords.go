// Package coords extracts latitude/longitude pairs from free-form chat text.
package coords

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Coordinates is a validated point on the globe.
type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

var (
	mentionPattern = regexp.MustCompile(`<@[^>]+>`)
	numberPattern  = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

	validate = validator.New()
)

// Parse strips mention tags from text and reads the first two numeric tokens
// as latitude and longitude. Tokens are separated by any run of whitespace
// and/or commas; tokens past the second are ignored.
func Parse(text string) (Coordinates, bool) {
	text = strings.TrimSpace(mentionPattern.ReplaceAllString(text, ""))

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(tokens) < 2 {
		return Coordinates{}, false
	}

	lat, ok := parseNumber(tokens[0])
	if !ok {
		return Coordinates{}, false
	}
	lon, ok := parseNumber(tokens[1])
	if !ok {
		return Coordinates{}, false
	}

	c := Coordinates{Lat: lat, Lon: lon}
	if !c.Valid() {
		return Coordinates{}, false
	}
	return c, true
}

// Valid reports whether both components are inside their ranges.
func (c Coordinates) Valid() bool {
	return validate.Struct(c) == nil
}

// String renders the canonical "lat lon" form accepted by Parse.
func (c Coordinates) String() string {
	return FormatFloat(c.Lat) + " " + FormatFloat(c.Lon)
}

// Label renders "lat, lon", used when no place name is known.
func (c Coordinates) Label() string {
	return FormatFloat(c.Lat) + ", " + FormatFloat(c.Lon)
}

// FormatFloat prints v with the fewest digits that round-trip.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseNumber(token string) (float64, bool) {
	if !numberPattern.MatchString(token) {
		return 0, false
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
