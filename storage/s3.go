package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/paleotommytechy/portfolio/errs"
)

// CacheControl is sent with every object so browsers cache images for an hour.
const CacheControl = "max-age=3600"

// Options configures the S3-compatible endpoint of the hosted storage service.
type Options struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	// PublicBaseURL is the project URL public object links are built from.
	PublicBaseURL string
}

// S3 stores objects in one bucket of an S3-compatible service.
type S3 struct {
	client *s3.Client
	bucket string
	public string
}

func NewS3(ctx context.Context, opts Options) (*S3, error) {
	if opts.Endpoint == "" {
		return nil, errs.NewConfigError("STORAGE_ENDPOINT")
	}
	if opts.Bucket == "" {
		return nil, errs.NewConfigError("STORAGE_BUCKET")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
		o.UsePathStyle = true
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})

	return &S3{
		client: client,
		bucket: opts.Bucket,
		public: strings.TrimRight(opts.PublicBaseURL, "/"),
	}, nil
}

// Put writes body at key, replacing any existing object.
func (s *S3) Put(ctx context.Context, key, contentType string, body []byte) error {
	input := &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		CacheControl: aws.String(CacheControl),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return errs.NewUploadError(key, err)
	}
	return nil
}

// PublicURL is the link the storage service serves a public object at.
func (s *S3) PublicURL(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.public, s.bucket, strings.Join(segments, "/"))
}
