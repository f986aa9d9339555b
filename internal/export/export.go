// Package export writes analysis results to files, optionally compressed.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Compression identifies the stream compression chosen for a path.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
	Brotli
	LZ4
	Snappy
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Brotli:
		return "brotli"
	case LZ4:
		return "lz4"
	case Snappy:
		return "snappy"
	default:
		return "none"
	}
}

// CompressionFor picks the compression from the file extension:
// .gz, .zst, .br, .lz4 and .sz; anything else is uncompressed.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return Gzip
	case ".zst":
		return Zstd
	case ".br":
		return Brotli
	case ".lz4":
		return LZ4
	case ".sz":
		return Snappy
	default:
		return None
	}
}

// Create creates path and returns a writer that compresses according to
// CompressionFor(path). Closing it flushes the compressor and closes the
// file.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("export: failed to create %s: %w", path, err)
	}

	w, err := compressor(f, CompressionFor(path))
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("export: %s: %w", path, err)
	}

	if w == nil {
		return f, nil
	}

	return &stackWriter{Writer: w, closers: []io.Closer{w, f}}, nil
}

// Open opens path and returns a reader that decompresses according to
// CompressionFor(path).
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("export: failed to open %s: %w", path, err)
	}

	r, closer, err := decompressor(f, CompressionFor(path))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("export: %s: %w", path, err)
	}

	if r == nil {
		return f, nil
	}

	closers := []io.Closer{f}
	if closer != nil {
		closers = []io.Closer{closer, f}
	}

	return &stackReader{Reader: r, closers: closers}, nil
}

// compressor wraps w; a nil writer means no compression.
func compressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return enc, nil
	case Brotli:
		return brotli.NewWriterLevel(w, brotli.DefaultCompression), nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case Snappy:
		return snappy.NewBufferedWriter(w), nil
	default:
		return nil, nil
	}
}

// decompressor wraps r; a nil reader means no compression. The returned
// closer, when non-nil, releases decoder resources.
func decompressor(r io.Reader, c Compression) (io.Reader, io.Closer, error) {
	switch c {
	case Gzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip reader: %w", err)
		}
		return gr, gr, nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd reader: %w", err)
		}
		rc := dec.IOReadCloser()
		return rc, rc, nil
	case Brotli:
		return brotli.NewReader(r), nil, nil
	case LZ4:
		return lz4.NewReader(r), nil, nil
	case Snappy:
		return snappy.NewReader(r), nil, nil
	default:
		return nil, nil, nil
	}
}

type stackWriter struct {
	io.Writer
	closers []io.Closer
}

func (s *stackWriter) Close() error {
	return closeAll(s.closers)
}

type stackReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackReader) Close() error {
	return closeAll(s.closers)
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
