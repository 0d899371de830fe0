package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config points at an S3-compatible bucket (AWS, MinIO).
type S3Config struct {
	Region    string
	Endpoint  string // empty for AWS
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string // base URL objects are served from
	Prefix    string // key prefix inside the bucket
}

// putObjectAPI is the slice of the S3 client used here.
type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Storage struct {
	client    putObjectAPI
	bucket    string
	prefix    string
	publicURL string
}

func NewS3Storage(ctx context.Context, c S3Config) (*S3Storage, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(c.Region)}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Storage(client, c), nil
}

func newS3Storage(client putObjectAPI, c S3Config) *S3Storage {
	return &S3Storage{
		client:    client,
		bucket:    c.Bucket,
		prefix:    strings.Trim(c.Prefix, "/"),
		publicURL: strings.TrimRight(c.PublicURL, "/"),
	}
}

func (s *S3Storage) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	objKey := key
	if s.prefix != "" {
		objKey = s.prefix + "/" + key
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objKey),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", objKey, err)
	}
	return s.publicURL + "/" + objKey, nil
}
