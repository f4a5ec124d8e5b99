package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/resource-finder/internal/catalog"
	"github.com/sells-group/resource-finder/internal/config"
	"github.com/sells-group/resource-finder/internal/fetcher"
	"github.com/sells-group/resource-finder/internal/render"
	"github.com/sells-group/resource-finder/internal/router"
	"github.com/sells-group/resource-finder/internal/session"
	"github.com/sells-group/resource-finder/pkg/geocode"
)

// output is both collaborators a session renders into.
type output interface {
	session.Renderer
	session.MapWidget
}

// newFetcher builds the scheme multiplexer. The S3 fetcher is only wired
// when an endpoint is configured.
func newFetcher(c *config.Config) (fetcher.Fetcher, error) {
	mux := &fetcher.Mux{
		HTTP: fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:  c.Data.UserAgent,
			Timeout:    c.DataTimeout(),
			MaxRetries: c.Data.MaxRetries,
			Rate:       rate.Limit(c.Data.RequestsPerSecond),
			Burst:      int(c.Data.RequestsPerSecond),
		}),
		File: fetcher.FileFetcher{},
	}
	if c.Data.S3.Endpoint != "" {
		s3, err := fetcher.NewS3Fetcher(fetcher.S3Options{
			Endpoint:  c.Data.S3.Endpoint,
			AccessKey: c.Data.S3.AccessKey,
			SecretKey: c.Data.S3.SecretKey,
			Region:    c.Data.S3.Region,
			UseSSL:    c.Data.S3.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		mux.S3 = s3
	}
	return mux, nil
}

// loadCatalog fetches both documents and indexes them. A load failure is
// reported as "failed to load data" on errOut.
func loadCatalog(ctx context.Context, c *config.Config, errOut io.Writer) (*catalog.Catalog, error) {
	f, err := newFetcher(c)
	if err != nil {
		return nil, err
	}

	res, err := fetcher.NewLoader(f, c.Data.ResourcesURL, c.Data.LocationsURL).Load(ctx)
	if err != nil {
		var le *fetcher.LoadError
		if errors.As(err, &le) {
			fmt.Fprintln(errOut, "failed to load data")
		}
		return nil, err
	}

	return catalog.Build(res.Resources, res.Locations, c.Search.Locale), nil
}

// newGeolocator picks the position source: a fixed point, else a geocoded
// address, else none. Sources are wrapped in the timeout and freshness cache.
func newGeolocator(c *config.Config) (session.Geolocator, error) {
	var next session.Geolocator
	switch {
	case c.Geolocation.Point != "":
		p, err := config.ParsePoint(c.Geolocation.Point)
		if err != nil {
			return nil, err
		}
		next = session.StaticGeolocator{Point: &p}
	case c.Geolocation.Address != "":
		client := geocode.NewClient(
			geocode.WithRateLimit(c.Geolocation.CensusRPS),
			geocode.WithBaseURL(c.Geolocation.CensusBaseURL),
		)
		next = geocode.NewAddressLocator(client, c.Geolocation.Address)
	default:
		return nil, nil
	}
	return session.NewCachingGeolocator(next, c.GeoTimeout(), c.GeoMaxAge()), nil
}

// newOutput returns the renderer for format, writing to w.
func newOutput(format string, w io.Writer, showMap bool) (output, error) {
	switch format {
	case "", "text":
		t := render.NewText(w)
		t.ShowMap = showMap
		return t, nil
	case "json":
		return render.NewJSON(w), nil
	default:
		return nil, eris.Errorf("unknown format %q (want text or json)", format)
	}
}

func limitsFrom(c *config.Config) session.Limits {
	return session.Limits{
		PageStep:        c.Search.PageStep,
		NearbyLocations: c.Search.NearbyLocations,
		DetailResources: c.Search.DetailResources,
	}
}

// newController wires a session over cat. out may be nil for a session that
// is rendered explicitly by the caller.
func newController(c *config.Config, cat *catalog.Catalog, store router.FragmentStore, out output) (*session.Controller, error) {
	geo, err := newGeolocator(c)
	if err != nil {
		return nil, err
	}

	opts := []session.Option{
		session.WithLimits(limitsFrom(c)),
		session.WithDebounce(c.Debounce()),
	}
	if geo != nil {
		opts = append(opts, session.WithGeolocator(geo))
	}
	if out != nil {
		opts = append(opts, session.WithRenderer(out), session.WithMap(out))
	}

	ctrl := session.New(cat, router.New(store), opts...)
	zap.L().Debug("session started", zap.String("session_id", ctrl.ID()))
	return ctrl, nil
}
