package file

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression identifies a stream compression format.
type Compression int

const (
	// CompressionAuto selects the format from the file suffix.
	CompressionAuto Compression = iota
	CompressionNone
	CompressionGzip
	CompressionBzip2
	CompressionXZ
	CompressionZstd
)

var compressionSuffixes = []struct {
	ext string
	c   Compression
}{
	{".gz", CompressionGzip},
	{".bz2", CompressionBzip2},
	{".xz", CompressionXZ},
	{".zst", CompressionZstd},
}

// String returns the canonical name of c.
func (c Compression) String() string {
	switch c {
	case CompressionAuto:
		return "auto"
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	case CompressionXZ:
		return "xz"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", int(c))
	}
}

// ParseCompression maps a configuration value onto a Compression.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return CompressionAuto, nil
	case "none":
		return CompressionNone, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	case "bzip2", "bz2":
		return CompressionBzip2, nil
	case "xz":
		return CompressionXZ, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	default:
		return CompressionAuto, fmt.Errorf("file: unknown compression %q", s)
	}
}

// DetectCompression infers the compression format from the path suffix.
func DetectCompression(path string) Compression {
	lower := strings.ToLower(path)
	for _, s := range compressionSuffixes {
		if strings.HasSuffix(lower, s.ext) {
			return s.c
		}
	}
	return CompressionNone
}

// TrimCompressionExt removes a recognised compression suffix from name.
func TrimCompressionExt(name string) string {
	lower := strings.ToLower(name)
	for _, s := range compressionSuffixes {
		if strings.HasSuffix(lower, s.ext) {
			return name[:len(name)-len(s.ext)]
		}
	}
	return name
}

// decompress wraps r with a reader for c. The returned close func releases
// decoder resources only; it never closes r.
func decompress(r io.Reader, c Compression) (io.Reader, func() error, error) {
	nop := func() error { return nil }

	switch c {
	case CompressionNone, CompressionAuto:
		return r, nop, nil
	case CompressionGzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip reader: %w", err)
		}
		return gz, gz.Close, nil
	case CompressionBzip2:
		return bzip2.NewReader(r), nop, nil
	case CompressionXZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("xz reader: %w", err)
		}
		return xr, nop, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd reader: %w", err)
		}
		return zr, func() error { zr.Close(); return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported compression %s", c)
	}
}
