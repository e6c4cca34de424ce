// Package file implements the local filesystem data source: directory
// listing, transparent decompression, character decoding, line iteration,
// fingerprinting and archive moves.
package file

import (
	"context"
	"fmt"
	"io"
	"os"

	"bulkload/internal/datasource"
)

// Options tunes how a Local source is opened.
type Options struct {
	// Encoding names the character encoding of the file content. Empty means
	// the bytes are passed through untouched. See LookupEncoding.
	Encoding string

	// Compression overrides suffix-based detection when set.
	Compression Compression
}

// Local is a filesystem data source that opens files from the local disk.
type Local struct {
	path string
	opt  Options
}

var _ datasource.Source = (*Local)(nil)

// NewLocal returns a new Local data source bound to the provided filesystem
// path. The returned value is safe for concurrent use by multiple goroutines
// as long as the underlying path location is valid for concurrent reads.
func NewLocal(path string, opt Options) *Local { return &Local{path: path, opt: opt} }

// Path returns the bound filesystem path.
func (l *Local) Path() string { return l.path }

// Open opens the configured path and returns a reader yielding decompressed,
// decoded bytes.
//
// If ctx is already done, Open returns ctx.Err() without touching the
// filesystem. Filesystem errors are wrapped with the path and keep
// errors.Is(err, os.ErrNotExist) working.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	enc, err := LookupEncoding(l.opt.Encoding)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	adviseSequential(f)

	comp := l.opt.Compression
	if comp == CompressionAuto {
		comp = DetectCompression(l.path)
	}
	r, closeDec, err := decompress(f, comp)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}

	return &readCloser{Reader: r, close: func() error {
		decErr := closeDec()
		if err := f.Close(); err != nil {
			return err
		}
		return decErr
	}}, nil
}

// OpenLines opens path as a LineSource.
func OpenLines(ctx context.Context, path string, opt Options) (datasource.LineSource, error) {
	rc, err := NewLocal(path, opt).Open(ctx)
	if err != nil {
		return nil, err
	}
	return NewLineReader(path, rc), nil
}

// Opener returns a datasource.Opener bound to opt.
func Opener(opt Options) datasource.Opener {
	return func(ctx context.Context, name string) (datasource.LineSource, error) {
		return OpenLines(ctx, name, opt)
	}
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error { return r.close() }
