package fetcher

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// S3Options configures an S3-compatible endpoint.
type S3Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

// S3Fetcher reads s3://bucket/key documents.
type S3Fetcher struct {
	client *minio.Client
}

// NewS3Fetcher connects a MinIO client to the endpoint. Empty keys use
// anonymous access.
func NewS3Fetcher(opts S3Options) (*S3Fetcher, error) {
	if opts.Endpoint == "" {
		return nil, eris.New("fetcher: s3 endpoint is required")
	}
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: create s3 client")
	}
	zap.L().Debug("fetcher: s3 client ready", zap.String("endpoint", opts.Endpoint))
	return &S3Fetcher{client: client}, nil
}

// ParseS3Location splits s3://bucket/key into bucket and key.
func ParseS3Location(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", eris.Wrap(err, "fetcher: parse s3 location")
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", eris.Errorf("fetcher: not an s3 location: %q", location)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", eris.Errorf("fetcher: s3 location has no key: %q", location)
	}
	return u.Host, key, nil
}

// Download opens the object. A missing object fails here rather than on
// the first read.
func (s *S3Fetcher) Download(ctx context.Context, location string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3Location(location)
	if err != nil {
		return nil, err
	}
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: get s3 object %s/%s", bucket, key)
	}
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, eris.Wrapf(err, "fetcher: stat s3 object %s/%s (%s)", bucket, key, minio.ToErrorResponse(err).Code)
	}
	return obj, nil
}
