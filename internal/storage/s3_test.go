package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3PresignerRequiresBucket(t *testing.T) {
	_, err := NewS3Presigner(context.Background(), S3Options{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPresignPutAgainstCustomEndpoint(t *testing.T) {
	p, err := NewS3Presigner(context.Background(), S3Options{
		Bucket:      "furnico-assets",
		Region:      "us-east-1",
		Endpoint:    "http://localhost:9000",
		AccessKeyID: "minio",
		SecretKey:   "minio-secret",
		Expires:     2 * time.Hour,
	})
	require.NoError(t, err)

	up, err := p.PresignPut(context.Background(), "products/images/a.png", "image/png", 1024)
	require.NoError(t, err)

	u, err := url.Parse(up.UploadURL)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/furnico-assets/products/images/a.png", u.Path)
	assert.Equal(t, "3600", u.Query().Get("X-Amz-Expires"))
	assert.Equal(t, "http://localhost:9000/furnico-assets/products/images/a.png", up.PublicURL)
	assert.Equal(t, "PUT", up.Method)
}

func TestPublicURL(t *testing.T) {
	p := &S3Presigner{opts: S3Options{Bucket: "b", Region: "eu-west-1"}}
	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com/k.glb", p.publicURL("k.glb"))

	p.opts.PublicBaseURL = "https://cdn.furnico.dev/"
	assert.Equal(t, "https://cdn.furnico.dev/k.glb", p.publicURL("k.glb"))
}
