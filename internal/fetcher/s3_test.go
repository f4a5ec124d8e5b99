package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseS3Location(t *testing.T) {
	b, k, err := ParseS3Location("s3://finder-data/2026/resources.json")
	require.NoError(t, err)
	assert.Equal(t, "finder-data", b)
	assert.Equal(t, "2026/resources.json", k)

	for _, bad := range []string{"s3://bucket", "s3://bucket/", "https://bucket/key", "s3:///key"} {
		_, _, err := ParseS3Location(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewS3Fetcher_RequiresEndpoint(t *testing.T) {
	_, err := NewS3Fetcher(S3Options{})
	require.Error(t, err)
}

// s3Server serves one object with path-style addressing.
func s3Server(t *testing.T, bucket, key, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/"+bucket+"/"+key {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`) //nolint:errcheck
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Header().Set("ETag", `"abc"`)
		w.Header().Set("Last-Modified", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC).Format(http.TimeFormat))
		if r.Method == http.MethodHead {
			return
		}
		io.WriteString(w, body) //nolint:errcheck
	}))
}

func TestS3Fetcher_Download(t *testing.T) {
	srv := s3Server(t, "finder", "resources.json", `[{"name":"a"}]`)
	defer srv.Close()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	f, err := NewS3Fetcher(S3Options{Endpoint: u.Host, AccessKey: "key", SecretKey: "secret"})
	require.NoError(t, err)

	body, err := f.Download(context.Background(), "s3://finder/resources.json")
	require.NoError(t, err)
	defer body.Close() //nolint:errcheck
	recs, err := DecodeRecords(body, FormatJSON)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "a", recs[0].Text("name"))

	_, err = f.Download(context.Background(), "s3://finder/missing.json")
	require.Error(t, err)
}
