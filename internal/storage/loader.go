// This file implements the insert batcher: it groups value tuples into
// multi-row INSERT statements and hands each one to a Repository.
//
// Every engine the project targets accepts INSERT ... VALUES (...),(...);
// SQL Server caps a single VALUES list at 1000 rows, which bounds
// MaxRowsPerStatement.

package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// MaxRowsPerStatement is the largest tuple count per INSERT.
const MaxRowsPerStatement = 1000

// InsertBatcher accumulates value tuples for one table and executes them
// as INSERT statements of up to rowsPerStmt tuples. It is not safe for
// concurrent use; the loader keeps one per file.
type InsertBatcher struct {
	repo        Repository
	table       string
	rowsPerStmt int
	log         *slog.Logger

	buf        strings.Builder
	pending    int
	rows       int64
	statements int64
	start      time.Time
}

// NewInsertBatcher returns a batcher writing into table, which must already
// be quoted and qualified. rowsPerStmt is clamped to [1, MaxRowsPerStatement].
func NewInsertBatcher(repo Repository, table string, rowsPerStmt int, log *slog.Logger) *InsertBatcher {
	if rowsPerStmt < 1 {
		rowsPerStmt = 1
	}
	if rowsPerStmt > MaxRowsPerStatement {
		rowsPerStmt = MaxRowsPerStatement
	}
	if log == nil {
		log = slog.Default()
	}
	return &InsertBatcher{
		repo:        repo,
		table:       table,
		rowsPerStmt: rowsPerStmt,
		log:         log,
		start:       time.Now(),
	}
}

// Add appends one tuple. literals is the comma-joined literal list without
// surrounding parentheses. A full batch is flushed before Add returns.
func (b *InsertBatcher) Add(ctx context.Context, literals string) error {
	if b.pending == 0 {
		b.buf.Reset()
		b.buf.WriteString("INSERT INTO ")
		b.buf.WriteString(b.table)
		b.buf.WriteString(" VALUES (")
	} else {
		b.buf.WriteString(",\n(")
	}
	b.buf.WriteString(literals)
	b.buf.WriteByte(')')
	b.pending++

	if b.pending >= b.rowsPerStmt {
		return b.Flush(ctx)
	}
	return nil
}

// Flush executes the pending statement, if any.
func (b *InsertBatcher) Flush(ctx context.Context) error {
	if b.pending == 0 {
		return nil
	}
	n := b.pending
	b.pending = 0

	if err := b.repo.Exec(ctx, b.buf.String()); err != nil {
		b.log.Debug("loader: insert failed", "table", b.table, "rows", n, "total_inserted", b.rows, "err", err)
		return fmt.Errorf("insert %d row(s) after %d: %w", n, b.rows, err)
	}
	b.rows += int64(n)
	b.statements++
	return nil
}

// Rows returns the number of rows executed successfully.
func (b *InsertBatcher) Rows() int64 { return b.rows }

// Statements returns the number of INSERT statements executed.
func (b *InsertBatcher) Statements() int64 { return b.statements }

// Elapsed returns the time since the batcher was created.
func (b *InsertBatcher) Elapsed() time.Duration { return time.Since(b.start) }
