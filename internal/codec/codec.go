// Package codec provides compression and decompression for opening book
// files.
package codec

import (
	"io"
	"strings"
)

// Codec provides compression and decompression functionality.
type Codec interface {
	// Reader wraps r to decompress data read from it.
	Reader(r io.Reader) (io.ReadCloser, error)
	// Writer wraps w to compress data written to it.
	Writer(w io.Writer) (io.WriteCloser, error)
	// Extension returns the file extension without dot (e.g. "zst",
	// "gz"). Empty for no compression.
	Extension() string
}

// ByExtension picks the codec matching a file name: ".zst" and ".gz"
// select the corresponding codec, anything else selects no compression.
func ByExtension(path string) Codec {
	switch {
	case strings.HasSuffix(path, ".zst"):
		return NewZstd()
	case strings.HasSuffix(path, ".gz"):
		return NewGzip()
	default:
		return NewNoop()
	}
}
