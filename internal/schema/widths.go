// Package schema infers the column layout of a batch of delimited files:
// the header that names the columns and, per column, the widest value seen
// in any data row. The result sizes the text columns of the destination
// table.
package schema

import (
	"context"
	"fmt"
	"unicode/utf16"

	"bulkload/internal/datasource"
	"bulkload/internal/parser/delimited"
)

// DefaultWidth is assigned to columns whose observed maximum width is zero,
// i.e. columns that are empty in every data row or that no data row reached.
const DefaultWidth = 9

// WidthMap maps a header column name to its maximum observed width in
// UTF-16 code units. A character outside the Basic Multilingual Plane counts
// twice, as it does for NVARCHAR(n).
type WidthMap map[string]int

// Width returns the width for name and whether name is known.
func (w WidthMap) Width(name string) (int, bool) {
	n, ok := w[name]
	return n, ok
}

// Inference is the outcome of a width scan.
type Inference struct {
	// Header is the column list taken from the first row of the batch.
	Header []string
	// Widths holds one entry per distinct header name.
	Widths WidthMap
	// Files is the number of sources consumed.
	Files int
	// Rows is the number of data rows measured, header lines excluded.
	Rows int64
}

// Options controls how raw lines are split during inference. They must match
// what the loader uses, otherwise column positions drift.
type Options struct {
	Dialect delimited.Dialect
	// Scrub, when enabled, is applied to every line before tokenizing.
	Scrub *delimited.Scrubber
}

// ctxCheckEvery bounds how often the row loop polls the context.
const ctxCheckEvery = 1024

type inferrer struct {
	opt    Options
	header []string
	max    []int
	files  int
	rows   int64
}

// InferWidths scans files in order and builds the WidthMap.
//
// The first row seen across the batch is the header; the first line of every
// other file is treated as that file's header and skipped. For each data row
// only positions below the header arity are measured; extra columns are
// ignored and short rows leave trailing columns untouched.
//
// Any iterator error aborts the scan; no partial result is returned.
func InferWidths(ctx context.Context, files []datasource.Lines, opt Options) (Inference, error) {
	inf := &inferrer{opt: opt}
	for i, it := range files {
		if err := inf.feed(ctx, it); err != nil {
			return Inference{}, fmt.Errorf("schema: source %d: %w", i, err)
		}
	}
	return inf.result(), nil
}

// ScanFiles opens each path with open, in order, and runs the same scan as
// InferWidths. Files are opened one at a time and closed before the next is
// opened. The first open or read error fails the whole scan.
func ScanFiles(ctx context.Context, paths []string, open datasource.Opener, opt Options) (Inference, error) {
	inf := &inferrer{opt: opt}
	for _, p := range paths {
		src, err := open(ctx, p)
		if err != nil {
			return Inference{}, fmt.Errorf("schema: %w", err)
		}
		err = inf.feed(ctx, src)
		cerr := src.Close()
		if err != nil {
			return Inference{}, fmt.Errorf("schema: %s: %w", p, err)
		}
		if cerr != nil {
			return Inference{}, fmt.Errorf("schema: close %s: %w", p, cerr)
		}
	}
	return inf.result(), nil
}

func (in *inferrer) feed(ctx context.Context, it datasource.Lines) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	in.files++

	first := true
	var n int
	for it.Next() {
		n++
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		line := it.Line()
		if first {
			first = false
			if in.header == nil {
				line = in.opt.Scrub.Apply(delimited.StripBOM(line))
				in.header = delimited.Tokenize(line, in.opt.Dialect)
				in.max = make([]int, len(in.header))
			}
			continue
		}

		in.measure(delimited.Tokenize(in.opt.Scrub.Apply(line), in.opt.Dialect))
	}
	return it.Err()
}

func (in *inferrer) measure(cols []string) {
	in.rows++
	limit := len(cols)
	if limit > len(in.max) {
		limit = len(in.max)
	}
	for i := 0; i < limit; i++ {
		if w := TextWidth(cols[i]); w > in.max[i] {
			in.max[i] = w
		}
	}
}

// TextWidth returns the length of v in UTF-16 code units. It is never less
// than the rune count. Invalid UTF-8 bytes count as one unit each.
func TextWidth(v string) int {
	n := 0
	for _, r := range v {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

func (in *inferrer) result() Inference {
	widths := make(WidthMap, len(in.header))
	for i, name := range in.header {
		if w := in.max[i]; w >= widths[name] {
			widths[name] = w
		}
	}
	for name, w := range widths {
		if w == 0 {
			widths[name] = DefaultWidth
		}
	}
	return Inference{
		Header: in.header,
		Widths: widths,
		Files:  in.files,
		Rows:   in.rows,
	}
}
