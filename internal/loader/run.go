package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrSkipped is the result error of files never started because an earlier
// file failed and StopOnFailure is set.
var ErrSkipped = errors.New("loader: skipped after an earlier failure")

// ErrFilesFailed is returned by Run when at least one file did not load.
var ErrFilesFailed = errors.New("loader: one or more files failed")

// Summary aggregates the results of a Run.
type Summary struct {
	// Results holds one entry per input path, in input order.
	Results []FileResult

	Loaded  int
	Failed  int
	Skipped int

	Rows       int64
	Statements int64
	Elapsed    time.Duration
}

// OK reports whether every file loaded.
func (s Summary) OK() bool { return s.Failed == 0 && s.Skipped == 0 }

// Run loads paths concurrently. Each worker sends its FileResult on a
// channel drained by a single coordinator, which builds the Summary. With
// StopOnFailure a failed file stops further files from starting; files
// already running always finish.
//
// The returned error is ctx's error when the run was canceled, or wraps
// ErrFilesFailed when the Summary is not OK.
func (l *Loader) Run(ctx context.Context, paths []string) (Summary, error) {
	start := time.Now()

	startCtx, stopStarting := context.WithCancel(ctx)
	defer stopStarting()

	type indexed struct {
		i   int
		res FileResult
	}
	results := make(chan indexed)
	done := make(chan Summary)

	go func() {
		s := Summary{Results: make([]FileResult, len(paths))}
		for r := range results {
			s.Results[r.i] = r.res
			switch {
			case errors.Is(r.res.Err, ErrSkipped):
				s.Skipped++
			case r.res.Err != nil:
				s.Failed++
			default:
				s.Loaded++
			}
			s.Rows += r.res.Rows
			s.Statements += r.res.Statements
		}
		done <- s
	}()

	workers := l.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := startCtx.Err(); err != nil {
				res := FileResult{Path: p, Err: ErrSkipped}
				if ctx.Err() != nil {
					res.Err = fmt.Errorf("%w: %w", ErrSkipped, ctx.Err())
				}
				results <- indexed{i, res}
				return nil
			}
			res := l.LoadFile(ctx, p)
			if res.Err != nil && l.cfg.StopOnFailure {
				stopStarting()
			}
			results <- indexed{i, res}
			return nil
		})
	}
	_ = g.Wait()
	close(results)

	s := <-done
	s.Elapsed = time.Since(start)

	l.log.Info("loader: run finished",
		"files", len(paths),
		"loaded", s.Loaded,
		"failed", s.Failed,
		"skipped", s.Skipped,
		"rows", s.Rows,
		"statements", s.Statements,
		"elapsed", s.Elapsed,
	)

	if err := ctx.Err(); err != nil {
		return s, err
	}
	if !s.OK() {
		return s, fmt.Errorf("%w: %d failed, %d skipped of %d", ErrFilesFailed, s.Failed, s.Skipped, len(paths))
	}
	return s, nil
}
