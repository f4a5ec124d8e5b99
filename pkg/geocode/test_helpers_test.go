package geocode

import (
	"net/http"
	"net/url"

	"golang.org/x/time/rate"
)

// newTestLimiter creates a rate limiter that effectively does not limit for tests.
func newTestLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Inf, 1)
}

// newRewriteClient returns a client that sends every request to the test
// server, keeping path and query. It lets tests exercise the default Census
// host without a base-URL override.
func newRewriteClient(testServerURL string) *http.Client {
	target, err := url.Parse(testServerURL)
	if err != nil {
		panic(err)
	}
	return &http.Client{
		Transport: &rewriteTransport{base: http.DefaultTransport, target: target},
	}
}

type rewriteTransport struct {
	base   http.RoundTripper
	target *url.URL
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = t.target.Scheme
	out.URL.Host = t.target.Host
	out.Host = t.target.Host
	return t.base.RoundTrip(out)
}
