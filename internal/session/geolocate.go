package session

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/resource-finder/internal/geo"
)

// Geolocation defaults.
const (
	DefaultGeoTimeout = 10 * time.Second
	DefaultGeoMaxAge  = 60 * time.Second
)

// ErrNoPosition is returned when a geolocator has nothing to report.
var ErrNoPosition = eris.New("session: position unavailable")

// Geolocator acquires the user's position.
type Geolocator interface {
	Locate(ctx context.Context) (geo.Point, error)
}

// StaticGeolocator always reports the same point. A nil Point reports
// ErrNoPosition.
type StaticGeolocator struct {
	Point *geo.Point
}

// Locate returns the configured point.
func (s StaticGeolocator) Locate(_ context.Context) (geo.Point, error) {
	if s.Point == nil || !s.Point.Valid() {
		return geo.Point{}, ErrNoPosition
	}
	return *s.Point, nil
}

// CachingGeolocator bounds each lookup with a timeout and serves the last
// fix while it is younger than maxAge.
type CachingGeolocator struct {
	next    Geolocator
	timeout time.Duration
	maxAge  time.Duration
	now     func() time.Time

	mu   sync.Mutex
	last geo.Point
	at   time.Time
	has  bool
}

// NewCachingGeolocator wraps next. Non-positive durations use the defaults.
func NewCachingGeolocator(next Geolocator, timeout, maxAge time.Duration) *CachingGeolocator {
	if timeout <= 0 {
		timeout = DefaultGeoTimeout
	}
	if maxAge <= 0 {
		maxAge = DefaultGeoMaxAge
	}
	return &CachingGeolocator{next: next, timeout: timeout, maxAge: maxAge, now: time.Now}
}

type locateResult struct {
	p   geo.Point
	err error
}

// Locate returns a cached fix when fresh, otherwise asks the wrapped
// geolocator and gives up after the timeout even if it does not.
func (c *CachingGeolocator) Locate(ctx context.Context) (geo.Point, error) {
	c.mu.Lock()
	if c.has && c.now().Sub(c.at) < c.maxAge {
		p := c.last
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan locateResult, 1)
	go func() {
		p, err := c.next.Locate(ctx)
		done <- locateResult{p: p, err: err}
	}()

	select {
	case <-ctx.Done():
		return geo.Point{}, eris.Wrap(ctx.Err(), "session: locate")
	case res := <-done:
		if res.err != nil {
			return geo.Point{}, eris.Wrap(res.err, "session: locate")
		}
		if !res.p.Valid() {
			return geo.Point{}, ErrNoPosition
		}
		c.mu.Lock()
		c.last, c.at, c.has = res.p, c.now(), true
		c.mu.Unlock()
		return res.p, nil
	}
}
