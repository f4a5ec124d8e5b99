package fetcher

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/resource-finder/internal/model"
)

// Document names.
const (
	DocResources = "resources"
	DocLocations = "locations"
)

// LoadError reports that one of the documents could not be loaded. It is
// fatal to a session.
type LoadError struct {
	Document string
	Location string
	Err      error
}

func (e *LoadError) Error() string {
	return "fetcher: load " + e.Document + " from " + e.Location + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Result holds the raw records of both documents.
type Result struct {
	Resources []model.RawRecord
	Locations []model.RawRecord
}

// Loader fetches the resources and locations documents.
type Loader struct {
	fetcher   Fetcher
	resources string
	locations string
}

// NewLoader returns a loader for the two document locations.
func NewLoader(f Fetcher, resources, locations string) *Loader {
	return &Loader{fetcher: f, resources: resources, locations: locations}
}

// Load fetches both documents concurrently. Either failing fails the load
// with a *LoadError and cancels the other.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	start := time.Now()
	var res Result

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := LoadDocument(gctx, l.fetcher, DocResources, l.resources)
		res.Resources = recs
		return err
	})
	g.Go(func() error {
		recs, err := LoadDocument(gctx, l.fetcher, DocLocations, l.locations)
		res.Locations = recs
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("fetcher: documents loaded",
		zap.Int("resources", len(res.Resources)),
		zap.Int("locations", len(res.Locations)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &res, nil
}

// LoadDocument fetches and decodes one document.
func LoadDocument(ctx context.Context, f Fetcher, document, location string) ([]model.RawRecord, error) {
	if location == "" {
		return nil, &LoadError{Document: document, Location: location, Err: eris.New("no location configured")}
	}
	body, err := f.Download(ctx, location)
	if err != nil {
		return nil, &LoadError{Document: document, Location: location, Err: err}
	}
	defer body.Close() //nolint:errcheck

	format := FormatOf(location)
	recs, err := DecodeRecords(body, format)
	if err != nil {
		return nil, &LoadError{Document: document, Location: location, Err: err}
	}
	zap.L().Debug("fetcher: document decoded",
		zap.String("document", document),
		zap.String("location", location),
		zap.Stringer("format", format),
		zap.Int("records", len(recs)),
	)
	return recs, nil
}
