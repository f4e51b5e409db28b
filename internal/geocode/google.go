package geocode

import (
	"context"
	"fmt"
	"strings"

	"github.com/kelvins/geocoder"
	"github.com/valinor-ai/weatherbot/internal/coords"
)

type reverseFunc func(geocoder.Location) ([]geocoder.Address, error)

// Google uses the Google Maps reverse geocoding API through
// kelvins/geocoder. The library keeps its key in a package variable, so
// only one Google reverser per process is supported.
type Google struct {
	reverse reverseFunc
}

func NewGoogle(apiKey string) *Google {
	geocoder.ApiKey = strings.TrimSpace(apiKey)
	return &Google{reverse: geocoder.GeocodingReverse}
}

func (g *Google) Reverse(ctx context.Context, at coords.Coordinates) (string, error) {
	type result struct {
		addresses []geocoder.Address
		err       error
	}

	// geocoder has no context support; abandon the call on cancellation.
	done := make(chan result, 1)
	go func() {
		addrs, err := g.reverse(geocoder.Location{Latitude: at.Lat, Longitude: at.Lon})
		done <- result{addresses: addrs, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res = <-done:
	}

	if res.err != nil {
		return "", fmt.Errorf("reverse geocoding: %w", res.err)
	}
	if len(res.addresses) == 0 {
		return "", ErrNoResults
	}

	addr := res.addresses[0]
	label := joinPlace(addr.City, addr.State, addr.Country)
	if label == "" {
		return "", ErrNoResults
	}
	return label, nil
}
