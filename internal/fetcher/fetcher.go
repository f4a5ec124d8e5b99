// Package fetcher loads the resource and location documents from local
// files, http(s) URLs or S3 buckets and decodes them into raw records.
package fetcher

import (
	"context"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// Fetcher opens a document by location.
type Fetcher interface {
	Download(ctx context.Context, location string) (io.ReadCloser, error)
}

// FileFetcher reads local paths and file:// URLs.
type FileFetcher struct{}

// Download opens the file at location.
func (FileFetcher) Download(ctx context.Context, location string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "fetcher: open file")
	}
	path := location
	if u, err := url.Parse(location); err == nil && u.Scheme == "file" {
		path = u.Path
		if u.Host != "" && u.Host != "localhost" {
			path = u.Host + u.Path
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open file %s", path)
	}
	return f, nil
}

// Mux dispatches on the location's scheme: http and https go to HTTP, s3
// to S3, everything else is a local file.
type Mux struct {
	HTTP Fetcher
	S3   Fetcher
	File Fetcher
}

// Download opens location with the fetcher its scheme selects.
func (m *Mux) Download(ctx context.Context, location string) (io.ReadCloser, error) {
	var next Fetcher
	switch scheme(location) {
	case "http", "https":
		next = m.HTTP
	case "s3":
		next = m.S3
	case "", "file":
		next = m.File
		if next == nil {
			next = FileFetcher{}
		}
	default:
		return nil, eris.Errorf("fetcher: unsupported scheme in %q", location)
	}
	if next == nil {
		return nil, eris.Errorf("fetcher: no fetcher configured for %q", location)
	}
	return next.Download(ctx, location)
}

// scheme returns the lowercased URL scheme of location, or "" for plain
// paths. Single-letter schemes are treated as drive letters.
func scheme(location string) string {
	i := strings.Index(location, "://")
	if i <= 1 {
		return ""
	}
	return strings.ToLower(location[:i])
}
