// Package gcsbook loads an opening book file from Google Cloud Storage.
package gcsbook

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"

	"github.com/discochess/movegrade/internal/book"
	"github.com/discochess/movegrade/internal/book/fenbook"
	"github.com/discochess/movegrade/internal/codec"
)

// ErrNotFound indicates the book object does not exist in the bucket.
var ErrNotFound = fmt.Errorf("gcsbook: object not found")

// Fetch downloads the book object and loads it into memory. The object
// is decompressed with the codec matching its name. The bucket must
// already exist.
func Fetch(ctx context.Context, bucketName, object string) (book.Book, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}
	defer client.Close()

	reader, err := client.Bucket(bucketName).Object(object).NewReader(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("creating reader: %w", err)
	}
	defer reader.Close()

	b, err := fenbook.New(reader, codec.ByExtension(object))
	if err != nil {
		return nil, fmt.Errorf("loading book %s/%s: %w", bucketName, object, err)
	}
	return b, nil
}
