package file

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"bulkload/internal/datasource"
)

const readBufferSize = 1 << 20

// LineReader iterates the lines of a stream. Both "\n" and "\r\n"
// terminators are stripped. Lines have no length limit.
type LineReader struct {
	name string
	rc   io.ReadCloser
	br   *bufio.Reader

	line string
	n    int
	err  error
	done bool
}

var _ datasource.LineSource = (*LineReader)(nil)

// NewLineReader wraps rc. Closing the LineReader closes rc.
func NewLineReader(name string, rc io.ReadCloser) *LineReader {
	return &LineReader{
		name: name,
		rc:   rc,
		br:   bufio.NewReaderSize(rc, readBufferSize),
	}
}

// Next advances to the next line.
func (r *LineReader) Next() bool {
	if r.done {
		return false
	}
	s, err := r.br.ReadString('\n')
	if err != nil {
		r.done = true
		if !errors.Is(err, io.EOF) {
			r.err = err
			return false
		}
		if s == "" {
			return false
		}
	}
	s = strings.TrimSuffix(s, "\n")
	r.line = strings.TrimSuffix(s, "\r")
	r.n++
	return true
}

// Line returns the current line.
func (r *LineReader) Line() string { return r.line }

// LineNumber returns the 1-based number of the current line.
func (r *LineReader) LineNumber() int { return r.n }

// Err returns the first non-EOF read error.
func (r *LineReader) Err() error { return r.err }

// Name returns the name given to NewLineReader.
func (r *LineReader) Name() string { return r.name }

// Close closes the underlying stream.
func (r *LineReader) Close() error { return r.rc.Close() }
