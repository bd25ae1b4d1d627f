package codec

import "io"

// Compile-time check that Noop implements Codec.
var _ Codec = (*Noop)(nil)

// Noop implements no compression.
type Noop struct{}

// NewNoop returns a new no-op codec.
func NewNoop() *Noop {
	return &Noop{}
}

// Reader returns r wrapped as a ReadCloser (no decompression).
func (c *Noop) Reader(r io.Reader) (io.ReadCloser, error) {
	if rc, ok := r.(io.ReadCloser); ok {
		return rc, nil
	}
	return io.NopCloser(r), nil
}

// Writer returns w wrapped as a WriteCloser (no compression).
func (c *Noop) Writer(w io.Writer) (io.WriteCloser, error) {
	if wc, ok := w.(io.WriteCloser); ok {
		return wc, nil
	}
	return nopWriteCloser{w}, nil
}

// Extension returns empty string.
func (c *Noop) Extension() string {
	return ""
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
