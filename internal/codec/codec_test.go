package codec

import (
	"bytes"
	"io"
	"testing"
)

func roundtrip(t *testing.T, c Codec, payload []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := c.Writer(&buf)
	if err != nil {
		t.Fatalf("Writer() error = %v", err)
	}
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	r, err := c.Reader(&buf)
	if err != nil {
		t.Fatalf("Reader() error = %v", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return out
}

func TestRoundtrip(t *testing.T) {
	payload := bytes.Repeat([]byte("rnbqkbnr/pppppppp/8/8 "), 200)

	codecs := map[string]Codec{
		"zstd": NewZstd(),
		"gzip": NewGzip(),
		"noop": NewNoop(),
	}
	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			got := roundtrip(t, c, payload)
			if !bytes.Equal(got, payload) {
				t.Errorf("roundtrip through %T corrupted the payload", c)
			}
		})
	}
}

func TestByExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"book.json.zst", "zst"},
		{"book.json.gz", "gz"},
		{"book.json", ""},
		{"archive.zst", "zst"},
	}
	for _, tt := range tests {
		c := ByExtension(tt.path)
		if c.Extension() != tt.want {
			t.Errorf("ByExtension(%q).Extension() = %q, want %q", tt.path, c.Extension(), tt.want)
		}
	}
}
