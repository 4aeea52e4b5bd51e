package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrNotConfigured = errors.New("object storage is not configured")

type PresignedUpload struct {
	Key       string            `json:"key"`
	UploadURL string            `json:"uploadUrl"`
	PublicURL string            `json:"publicUrl"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// Presigner hands out short-lived direct-upload URLs.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, size int64) (*PresignedUpload, error)
}

type S3Options struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
	AccessKeyID   string
	SecretKey     string
	Expires       time.Duration
}

type S3Presigner struct {
	presign *s3.PresignClient
	opts    S3Options
}

func NewS3Presigner(ctx context.Context, o S3Options) (*S3Presigner, error) {
	if o.Bucket == "" {
		return nil, ErrNotConfigured
	}
	if o.Expires <= 0 {
		o.Expires = 15 * time.Minute
	}
	if o.Expires > time.Hour {
		o.Expires = time.Hour
	}

	loaders := []func(*awsconfig.LoadOptions) error{}
	if o.Region != "" {
		loaders = append(loaders, awsconfig.WithRegion(o.Region))
	}
	if o.AccessKeyID != "" && o.SecretKey != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		}
	})
	return &S3Presigner{presign: s3.NewPresignClient(client), opts: o}, nil
}

func (p *S3Presigner) PresignPut(ctx context.Context, key, contentType string, size int64) (*PresignedUpload, error) {
	out, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.opts.Bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	}, s3.WithPresignExpires(p.opts.Expires))
	if err != nil {
		return nil, fmt.Errorf("s3: presign put: %w", err)
	}

	headers := make(map[string]string, len(out.SignedHeader))
	for k, v := range out.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return &PresignedUpload{
		Key:       key,
		UploadURL: out.URL,
		PublicURL: p.publicURL(key),
		Method:    out.Method,
		Headers:   headers,
		ExpiresAt: time.Now().Add(p.opts.Expires).UTC(),
	}, nil
}

func (p *S3Presigner) publicURL(key string) string {
	if p.opts.PublicBaseURL != "" {
		return strings.TrimRight(p.opts.PublicBaseURL, "/") + "/" + key
	}
	if p.opts.Endpoint != "" {
		return strings.TrimRight(p.opts.Endpoint, "/") + "/" + p.opts.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.opts.Bucket, p.opts.Region, key)
}
