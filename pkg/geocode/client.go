// Package geocode resolves a free-form address to a coordinate via the
// Census Geocoder one-line API.
package geocode

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Census Geocoder host.
const DefaultBaseURL = "https://geocoding.geo.census.gov"

// Client geocodes addresses.
type Client interface {
	// Geocode geocodes a single one-line address. An address the service
	// cannot match is reported with Matched=false, not an error.
	Geocode(ctx context.Context, address string) (*Result, error)
}

// Result holds the geocoding output for an address.
type Result struct {
	Latitude       float64
	Longitude      float64
	MatchedAddress string
	Source         string // "census"
	Matched        bool
	// Candidates is how many matches the service returned.
	Candidates int
}

// Option configures the geocoder.
type Option func(*geocoder)

// WithHTTPClient sets a custom HTTP client for Census requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *geocoder) {
		g.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second rate limit for Census API calls.
func WithRateLimit(rps float64) Option {
	return func(g *geocoder) {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithBaseURL points the client at another Census-compatible host.
func WithBaseURL(base string) Option {
	return func(g *geocoder) {
		if base != "" {
			g.baseURL = strings.TrimRight(base, "/")
		}
	}
}

type geocoder struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient creates a new geocoding Client with the given options.
func NewClient(opts ...Option) Client {
	g := &geocoder{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		limiter:    rate.NewLimiter(5, 5),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Geocode geocodes a single address with the Census one-line API.
func (g *geocoder) Geocode(ctx context.Context, address string) (*Result, error) {
	return g.geocodeCensus(ctx, strings.TrimSpace(address))
}
