package geocode_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kelvins/geocoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valinor-ai/weatherbot/internal/coords"
	"github.com/valinor-ai/weatherbot/internal/geocode"
	"github.com/valinor-ai/weatherbot/internal/platform/upstream"
)

var sf = coords.Coordinates{Lat: 37.7749, Lon: -122.4194}

func TestOpenWeather_Reverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/1.0/reverse", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "37.7749", q.Get("lat"))
		assert.Equal(t, "-122.4194", q.Get("lon"))
		assert.Equal(t, "1", q.Get("limit"))
		assert.Equal(t, "ow-key", q.Get("appid"))
		_, _ = w.Write([]byte(`[{"name":"San Francisco","state":"California","country":"US","lat":37.77,"lon":-122.41}]`))
	}))
	defer srv.Close()

	g := geocode.NewOpenWeather(srv.URL, "ow-key", srv.Client())
	label, err := g.Reverse(context.Background(), sf)
	require.NoError(t, err)
	assert.Equal(t, "San Francisco, California, US", label)
}

func TestOpenWeather_SkipsEmptyParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"Monaco","country":"MC"}]`))
	}))
	defer srv.Close()

	label, err := geocode.NewOpenWeather(srv.URL, "k", srv.Client()).Reverse(context.Background(), sf)
	require.NoError(t, err)
	assert.Equal(t, "Monaco, MC", label)
}

func TestOpenWeather_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := geocode.NewOpenWeather(srv.URL, "k", srv.Client()).Reverse(context.Background(), sf)
	assert.ErrorIs(t, err, geocode.ErrNoResults)
}

func TestOpenWeather_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	_, err := geocode.NewOpenWeather(srv.URL, "bad", srv.Client()).Reverse(context.Background(), sf)
	assert.ErrorIs(t, err, upstream.ErrUnexpected)
}

func TestOpenWeather_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":"object"}`))
	}))
	defer srv.Close()

	_, err := geocode.NewOpenWeather(srv.URL, "k", srv.Client()).Reverse(context.Background(), sf)
	assert.ErrorIs(t, err, geocode.ErrBadResponse)
}

func TestOpenWeather_MissingKey(t *testing.T) {
	_, err := geocode.NewOpenWeather("", "", nil).Reverse(context.Background(), sf)
	assert.ErrorIs(t, err, geocode.ErrMissingKey)
}

func TestGoogle_Reverse(t *testing.T) {
	g := geocode.NewGoogleWithFunc(func(loc geocoder.Location) ([]geocoder.Address, error) {
		assert.Equal(t, 37.7749, loc.Latitude)
		assert.Equal(t, -122.4194, loc.Longitude)
		return []geocoder.Address{{City: "San Francisco", State: "California", Country: "United States"}}, nil
	})

	label, err := g.Reverse(context.Background(), sf)
	require.NoError(t, err)
	assert.Equal(t, "San Francisco, California, United States", label)
}

func TestGoogle_Errors(t *testing.T) {
	failing := geocode.NewGoogleWithFunc(func(geocoder.Location) ([]geocoder.Address, error) {
		return nil, errors.New("REQUEST_DENIED")
	})
	_, err := failing.Reverse(context.Background(), sf)
	assert.ErrorContains(t, err, "REQUEST_DENIED")

	empty := geocode.NewGoogleWithFunc(func(geocoder.Location) ([]geocoder.Address, error) {
		return nil, nil
	})
	_, err = empty.Reverse(context.Background(), sf)
	assert.ErrorIs(t, err, geocode.ErrNoResults)
}

func TestGoogle_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	slow := geocode.NewGoogleWithFunc(func(geocoder.Location) ([]geocoder.Address, error) {
		<-release
		return nil, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := slow.Reverse(ctx, sf)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
