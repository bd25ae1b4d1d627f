// Package s3book loads an opening book file from AWS S3.
package s3book

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/discochess/movegrade/internal/book"
	"github.com/discochess/movegrade/internal/book/fenbook"
	"github.com/discochess/movegrade/internal/codec"
)

// ErrNotFound indicates the book object does not exist in the bucket.
var ErrNotFound = errors.New("s3book: object not found")

// Option configures the S3 client.
type Option func(*s3.Options)

// WithEndpoint sets a custom endpoint (for S3-compatible services like MinIO).
func WithEndpoint(endpoint string) Option {
	return func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}
}

// Fetch downloads the book object and loads it into memory. The object
// is decompressed with the codec matching its key. The bucket must
// already exist.
func Fetch(ctx context.Context, bucketName, key string, opts ...Option) (book.Book, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		for _, opt := range opts {
			opt(o)
		}
	})

	result, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading object: %w", err)
	}
	defer result.Body.Close()

	b, err := fenbook.New(result.Body, codec.ByExtension(key))
	if err != nil {
		return nil, fmt.Errorf("loading book %s/%s: %w", bucketName, key, err)
	}
	return b, nil
}
