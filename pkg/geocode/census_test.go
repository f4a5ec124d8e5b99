package geocode

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const whiteHouseMatch = `{
	"result": {
		"addressMatches": [{
			"coordinates": {"x": -77.0365, "y": 38.8977},
			"matchedAddress": "1600 PENNSYLVANIA AVE NW, WASHINGTON, DC, 20500"
		}]
	}
}`

func TestCensusSingleGeocode_Success(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("address")
		assert.Equal(t, censusOneLinePath, r.URL.Path)
		assert.Equal(t, censusBenchmark, r.URL.Query().Get("benchmark"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, whiteHouseMatch)
	}))
	defer srv.Close()

	g := &geocoder{
		httpClient: newRewriteClient(srv.URL),
		baseURL:    DefaultBaseURL,
		limiter:    newTestLimiter(),
	}

	result, err := g.geocodeCensus(context.Background(), "1600 Pennsylvania Ave NW, Washington, DC 20500")
	require.NoError(t, err)
	assert.Equal(t, "1600 Pennsylvania Ave NW, Washington, DC 20500", gotQuery)
	assert.True(t, result.Matched)
	assert.InDelta(t, 38.8977, result.Latitude, 0.0001)
	assert.InDelta(t, -77.0365, result.Longitude, 0.0001)
	assert.Equal(t, "census", result.Source)
	assert.Equal(t, "1600 PENNSYLVANIA AVE NW, WASHINGTON, DC, 20500", result.MatchedAddress)
	assert.Equal(t, 1, result.Candidates)
}

func TestCensusSingleGeocode_UnusableCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"result":{"addressMatches":[{"coordinates":{"x":0,"y":0}}]}}`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	_, err := c.Geocode(context.Background(), "1 Main St")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unusable coordinates")
}

func TestCensusSingleGeocode_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"result": {"addressMatches": []}}`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithRateLimit(100))

	result, err := c.Geocode(context.Background(), "123 Nowhere St, Faketown, XX 00000")
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Equal(t, "census", result.Source)
	assert.Zero(t, result.Candidates)
}

func TestCensusSingleGeocode_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL+"/"), WithHTTPClient(srv.Client()))

	_, err := c.Geocode(context.Background(), "1 Main St")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "census returned status 502")
}

func TestCensusSingleGeocode_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"result":`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	_, err := c.Geocode(context.Background(), "1 Main St")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "census parse response")
}

func TestCensusSingleGeocode_EmptyAddress(t *testing.T) {
	c := NewClient()
	_, err := c.Geocode(context.Background(), "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty address")
}

func TestCensusSingleGeocode_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(WithRateLimit(0.001))
	_, err := c.Geocode(ctx, "1 Main St")
	require.Error(t, err)
}
