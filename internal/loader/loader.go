// Package loader turns delimited files into INSERT statements against an
// already created table.
//
// Files are loaded in parallel, one goroutine per file up to Workers. Each
// worker reports a FileResult on a channel; a single coordinator goroutine
// owns the aggregated Summary, so no state is shared between workers.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bulkload/internal/datasource"
	"bulkload/internal/datasource/file"
	"bulkload/internal/metrics"
	"bulkload/internal/parser/delimited"
	"bulkload/internal/storage"
)

// Config describes one load run.
type Config struct {
	// Job labels metrics.
	Job string

	// Table is the quoted, qualified insert target.
	Table string

	Dialect delimited.Dialect
	Scrub   *delimited.Scrubber

	// Columns is the header column count, without the file-name column.
	Columns int

	// StrictArity fails a file on the first row whose column count differs
	// from Columns.
	StrictArity bool

	// RowsPerStatement is the tuple count per INSERT, clamped to
	// [1, storage.MaxRowsPerStatement].
	RowsPerStatement int

	// Multiline renders each literal on its own line.
	Multiline bool

	// Workers bounds concurrent files. Zero or less means one.
	Workers int

	// StopOnFailure stops starting new files after the first failure.
	StopOnFailure bool

	// ArchiveDir receives loaded files. Empty leaves them in place.
	ArchiveDir string

	// Stamp is appended to archived file names.
	Stamp string
}

// FileResult is the outcome of loading one file.
type FileResult struct {
	Path string

	// Rows is the number of data rows inserted.
	Rows int64

	// Statements is the number of INSERT statements executed.
	Statements int64

	// Fingerprint is the xxh3 content hash, taken after the last insert and
	// before archiving.
	Fingerprint string

	// ArchivedTo is the archive path, if the file was moved.
	ArchivedTo string

	Elapsed time.Duration
	Err     error
}

// Loader loads files into one table.
type Loader struct {
	cfg  Config
	repo storage.Repository
	open datasource.Opener
	log  *slog.Logger
}

// New returns a Loader executing through repo and reading with open.
func New(cfg Config, repo storage.Repository, open datasource.Opener, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{cfg: cfg, repo: repo, open: open, log: log}
}

// LoadFile loads every data row of path (the first line is the header) and
// then archives the file. The error, if any, is in the result.
func (l *Loader) LoadFile(ctx context.Context, path string) FileResult {
	start := time.Now()
	res := FileResult{Path: path}

	b, err := l.insertRows(ctx, path)
	if b != nil {
		res.Rows = b.Rows()
		res.Statements = b.Statements()
	}
	if err == nil {
		res.Fingerprint, res.ArchivedTo, err = l.finish(path)
	}
	res.Err = err
	res.Elapsed = time.Since(start)

	metrics.RecordRows(l.cfg.Job, "loaded", res.Rows)
	metrics.RecordStatements(l.cfg.Job, res.Statements)
	metrics.RecordFile(l.cfg.Job, err)

	if err != nil {
		l.log.Error("loader: file failed",
			"file", path,
			"rows", res.Rows,
			"elapsed", res.Elapsed,
			"err", err,
		)
		return res
	}
	l.log.Info("loader: file loaded",
		"file", path,
		"rows", res.Rows,
		"statements", res.Statements,
		"elapsed", res.Elapsed,
		"fingerprint", res.Fingerprint,
		"archived_to", res.ArchivedTo,
	)
	return res
}

func (l *Loader) insertRows(ctx context.Context, path string) (*storage.InsertBatcher, error) {
	src, err := l.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	b := storage.NewInsertBatcher(l.repo, l.cfg.Table, l.cfg.RowsPerStatement, l.log)
	fileLit := delimited.QuoteLiteral(path)

	line := 0
	for src.Next() {
		line++
		if line == 1 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return b, fmt.Errorf("%s: %w", path, err)
		}

		fields := delimited.Tokenize(l.cfg.Scrub.Apply(src.Line()), l.cfg.Dialect)
		if l.cfg.StrictArity {
			if err := delimited.CheckArity(fields, l.cfg.Columns, line); err != nil {
				metrics.RecordRows(l.cfg.Job, "rejected", 1)
				return b, fmt.Errorf("%s: %w", path, err)
			}
		}

		lits := append(delimited.QuoteAll(fields), fileLit)
		if err := b.Add(ctx, delimited.JoinLiterals(lits, l.cfg.Multiline)); err != nil {
			return b, fmt.Errorf("%s line %d: %w", path, line, err)
		}
	}
	if err := src.Err(); err != nil {
		return b, fmt.Errorf("read %s: %w", path, err)
	}
	if err := b.Flush(ctx); err != nil {
		return b, fmt.Errorf("%s line %d: %w", path, line, err)
	}
	l.log.Debug("loader: inserts flushed", "file", path, "statements", b.Statements(), "insert_elapsed", b.Elapsed())
	return b, nil
}

func (l *Loader) finish(path string) (fingerprint, archived string, err error) {
	fingerprint, err = file.Fingerprint(path)
	if err != nil {
		return "", "", err
	}
	if l.cfg.ArchiveDir == "" {
		return fingerprint, "", nil
	}
	archived, err = file.Archive(path, l.cfg.ArchiveDir, l.cfg.Stamp)
	if err != nil {
		return fingerprint, "", err
	}
	return fingerprint, archived, nil
}
