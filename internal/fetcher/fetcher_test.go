package fetcher

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	name string
	got  []string
}

func (s *stubFetcher) Download(_ context.Context, location string) (io.ReadCloser, error) {
	s.got = append(s.got, location)
	return io.NopCloser(bytes.NewBufferString(s.name)), nil
}

func TestFileFetcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resources.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	for _, loc := range []string{path, "file://" + path} {
		body, err := FileFetcher{}.Download(context.Background(), loc)
		require.NoError(t, err, loc)
		data, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
		require.NoError(t, body.Close())
	}

	_, err := FileFetcher{}.Download(context.Background(), filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "missing.json")
}

func TestMux(t *testing.T) {
	httpF := &stubFetcher{name: "http"}
	s3F := &stubFetcher{name: "s3"}
	fileF := &stubFetcher{name: "file"}
	m := &Mux{HTTP: httpF, S3: s3F, File: fileF}

	tests := []struct {
		loc  string
		want string
	}{
		{"https://example.org/resources.json", "http"},
		{"HTTP://example.org/resources.json", "http"},
		{"s3://bucket/libraries.json", "s3"},
		{"file:///tmp/x.json", "file"},
		{"data/resources.json", "file"},
		{`C://odd/path.json`, "file"},
	}
	for _, tt := range tests {
		body, err := m.Download(context.Background(), tt.loc)
		require.NoError(t, err, tt.loc)
		data, _ := io.ReadAll(body)
		assert.Equal(t, tt.want, string(data), tt.loc)
	}

	_, err := m.Download(context.Background(), "ftp://example.org/x.json")
	assert.ErrorContains(t, err, "unsupported scheme")

	_, err = (&Mux{}).Download(context.Background(), "s3://bucket/key")
	assert.ErrorContains(t, err, "no fetcher configured")
}
