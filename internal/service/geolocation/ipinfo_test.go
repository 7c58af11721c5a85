package geolocation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPInfoClient_Lookup(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse func(w http.ResponseWriter, r *http.Request)
		expectError    bool
		expectCountry  string
		expectLat      *float64
		expectLon      *float64
	}{
		{
			name: "full payload",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/8.8.8.8", r.URL.Path)
				assert.Equal(t, "test-token", r.URL.Query().Get("token"))
				w.Write([]byte(`{"ip":"8.8.8.8","city":"Mountain View","region":"California","country":"US","loc":"37.4056,-122.0775"}`))
			},
			expectCountry: "US",
			expectLat:     floatPtr(37.4056),
			expectLon:     floatPtr(-122.0775),
		},
		{
			name: "payload without loc",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"ip":"8.8.8.8","country":"US"}`))
			},
			expectCountry: "US",
		},
		{
			name: "service error",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			expectError: true,
		},
		{
			name: "malformed json",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResponse))
			defer server.Close()

			client := NewIPInfoClient(server.URL, "test-token", nil)
			geo, err := client.Lookup(context.Background(), "8.8.8.8")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, geo)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, geo)
			require.NotNil(t, geo.Country)
			assert.Equal(t, tt.expectCountry, *geo.Country)
			assert.Equal(t, tt.expectLat, geo.Latitude)
			assert.Equal(t, tt.expectLon, geo.Longitude)
		})
	}
}

func TestIPInfoClient_Disabled(t *testing.T) {
	client := NewIPInfoClient("", "", nil)
	assert.False(t, client.Enabled())

	geo, err := client.Lookup(context.Background(), "8.8.8.8")
	assert.NoError(t, err)
	assert.Nil(t, geo)
}

func TestParseLoc(t *testing.T) {
	tests := []struct {
		loc string
		lat *float64
		lon *float64
	}{
		{loc: "", lat: nil, lon: nil},
		{loc: "51.5,-0.12", lat: floatPtr(51.5), lon: floatPtr(-0.12)},
		{loc: "51.5", lat: floatPtr(51.5), lon: nil},
		{loc: "north,-0.12", lat: nil, lon: floatPtr(-0.12)},
		{loc: "37.4abc, -122.08", lat: nil, lon: floatPtr(-122.08)},
	}

	for _, tt := range tests {
		t.Run(tt.loc, func(t *testing.T) {
			lat, lon := ParseLoc(tt.loc)
			assert.Equal(t, tt.lat, lat)
			assert.Equal(t, tt.lon, lon)
		})
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
