// Package logging configures the structured run logger.
//
// A run writes every record to stderr and, when a log directory is set, to
// two files named after the run start time:
//
//	OutputLog_<yyyyMMddHHmmss>.log  records at the configured level and above
//	ErrorLog_<yyyyMMddHHmmss>.log   error records only
//
// Every record carries the run_id attribute so lines from concurrent runs
// writing to a shared collector can be told apart.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StampLayout formats the run start time in log file names.
const StampLayout = "20060102150405"

// Options configures Setup.
type Options struct {
	// Dir receives the output and error log files. Empty disables files.
	Dir string

	// Level is "debug", "info", "warn" or "error" (default "info").
	Level string

	// Format is "text" or "json" (default "text").
	Format string

	// Stderr overrides the console writer; nil means os.Stderr.
	Stderr io.Writer

	// Now overrides the clock used for the file stamp.
	Now func() time.Time
}

// Run is a configured logger plus the files it owns.
type Run struct {
	Logger *slog.Logger

	// ID is the run identifier attached to every record.
	ID string

	// Stamp is the start time as used in file names.
	Stamp string

	OutputPath string
	ErrorPath  string

	files []*os.File
}

// ParseLevel converts a level name to slog.Level. An empty name is info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", level)
	}
}

// Setup builds the run logger described by opt.
func Setup(opt Options) (*Run, error) {
	level, err := ParseLevel(opt.Level)
	if err != nil {
		return nil, err
	}
	now := time.Now
	if opt.Now != nil {
		now = opt.Now
	}
	stderr := opt.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	json := strings.EqualFold(opt.Format, "json")

	run := &Run{
		ID:    uuid.NewString(),
		Stamp: now().Format(StampLayout),
	}

	handlers := []slog.Handler{newHandler(stderr, level, json)}

	if opt.Dir != "" {
		if err := os.MkdirAll(opt.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("logging: create log dir: %w", err)
		}
		run.OutputPath = filepath.Join(opt.Dir, "OutputLog_"+run.Stamp+".log")
		run.ErrorPath = filepath.Join(opt.Dir, "ErrorLog_"+run.Stamp+".log")

		out, err := openLog(run.OutputPath)
		if err != nil {
			return nil, err
		}
		run.files = append(run.files, out)

		errf, err := openLog(run.ErrorPath)
		if err != nil {
			_ = run.Close()
			return nil, err
		}
		run.files = append(run.files, errf)

		handlers = append(handlers,
			newHandler(out, level, json),
			newHandler(errf, slog.LevelError, json),
		)
	}

	run.Logger = slog.New(fanout(handlers)).With("run_id", run.ID)
	return run, nil
}

// Close flushes and closes the log files.
func (r *Run) Close() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.files {
		if err := f.Sync(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
		if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
	}
	r.files = nil
	return errors.Join(errs...)
}

func openLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	return f, nil
}

func newHandler(w io.Writer, level slog.Level, json bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
