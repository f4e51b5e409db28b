package geocode

import "github.com/kelvins/geocoder"

// NewGoogleWithFunc swaps the library call for tests.
func NewGoogleWithFunc(fn func(geocoder.Location) ([]geocoder.Address, error)) *Google {
	return &Google{reverse: fn}
}
