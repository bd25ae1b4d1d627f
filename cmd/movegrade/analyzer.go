package main

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/discochess/movegrade"
	"github.com/discochess/movegrade/internal/book"
	"github.com/discochess/movegrade/internal/book/cachedbook"
	"github.com/discochess/movegrade/internal/book/fenbook"
	"github.com/discochess/movegrade/internal/book/gcsbook"
	"github.com/discochess/movegrade/internal/book/s3book"
	"github.com/discochess/movegrade/internal/engine/ucieval"
	"github.com/discochess/movegrade/internal/stats/logger"
)

// bookCacheSize is how many book lookups the CLI memoizes.
const bookCacheSize = 1024

// newAnalyzer builds an analyzer from the global flags.
func newAnalyzer(log *zap.Logger) (*movegrade.Analyzer, error) {
	opts := []movegrade.Option{
		movegrade.WithEngine(ucieval.New(enginePath)),
		movegrade.WithDepth(depth),
		movegrade.WithLogger(log.Named("movegrade")),
		movegrade.WithStats(logger.New(log.Named("movegrade.stats"))),
	}
	if workers > 0 {
		opts = append(opts, movegrade.WithWorkers(workers))
	}

	if bookPath != "" {
		base, err := openBook(bookPath)
		if err != nil {
			return nil, fmt.Errorf("opening book: %w", err)
		}
		bk, err := cachedbook.New(base, bookCacheSize)
		if err != nil {
			return nil, fmt.Errorf("caching book: %w", err)
		}
		opts = append(opts, movegrade.WithBook(bk))
	}

	analyzer, err := movegrade.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating analyzer: %w", err)
	}
	return analyzer, nil
}

// openBook opens a local book file, or downloads one from cloud storage
// when the path is a gs:// or s3:// URL.
func openBook(path string) (book.Book, error) {
	ctx := context.Background()
	switch {
	case strings.HasPrefix(path, "gs://"):
		bucket, object, err := splitBucketURL(strings.TrimPrefix(path, "gs://"))
		if err != nil {
			return nil, err
		}
		return gcsbook.Fetch(ctx, bucket, object)
	case strings.HasPrefix(path, "s3://"):
		bucket, key, err := splitBucketURL(strings.TrimPrefix(path, "s3://"))
		if err != nil {
			return nil, err
		}
		return s3book.Fetch(ctx, bucket, key)
	default:
		return fenbook.Open(path)
	}
}

func splitBucketURL(rest string) (bucket, object string, err error) {
	bucket, object, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("malformed book URL: need bucket/object, got %q", rest)
	}
	return bucket, object, nil
}
