// Package geocode resolves coordinates to human-readable place names.
package geocode

import (
	"context"
	"errors"
	"strings"

	"github.com/valinor-ai/weatherbot/internal/coords"
)

var (
	ErrNoResults   = errors.New("no reverse geocoding results")
	ErrMissingKey  = errors.New("geocoding api key is not configured")
	ErrBadResponse = errors.New("malformed geocoding response")
)

// Reverser looks up a place label such as "Paris, Ile-de-France, FR".
type Reverser interface {
	Reverse(ctx context.Context, at coords.Coordinates) (string, error)
}

// joinPlace joins the non-empty parts with ", ".
func joinPlace(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
