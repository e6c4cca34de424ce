// Package datasource defines the read-side abstractions the loader and the
// schema inferrer consume: byte sources and line iterators.
package datasource

import (
	"context"
	"io"
)

// Source opens a byte stream.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Lines iterates raw lines with their terminators stripped.
//
// Usage follows bufio.Scanner:
//
//	for it.Next() {
//		use(it.Line())
//	}
//	if err := it.Err(); err != nil { ... }
type Lines interface {
	Next() bool
	Line() string
	Err() error
}

// LineSource is a Lines backed by an open resource.
type LineSource interface {
	Lines
	io.Closer

	// Name identifies the underlying resource, typically its path.
	Name() string
}

// Opener opens a LineSource by name.
type Opener func(ctx context.Context, name string) (LineSource, error)
