// Package pipeline runs a bulk load end to end:
//
//	list files -> infer widths -> emit DDL -> apply DDL -> load rows
//
// Inference and DDL are strict prerequisites: a single failure in either
// aborts the run before any table is touched, and no row is inserted until
// the table has been recreated.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bulkload/internal/config"
	"bulkload/internal/datasource"
	"bulkload/internal/datasource/file"
	"bulkload/internal/ddl"
	"bulkload/internal/loader"
	"bulkload/internal/metrics"
	"bulkload/internal/schema"
	"bulkload/internal/storage"
)

// ErrNoInput is returned when the source selects no files.
var ErrNoInput = errors.New("pipeline: no input files")

// ErrInvalidConfig wraps the error-severity issues of a rejected config.
var ErrInvalidConfig = errors.New("pipeline: invalid configuration")

// Deps are the collaborators of a run. Zero fields get production defaults.
type Deps struct {
	Log *slog.Logger

	// Open overrides how input files are read.
	Open datasource.Opener

	// NewRepository overrides storage.New.
	NewRepository func(ctx context.Context, cfg storage.Config) (storage.Repository, error)

	// Stamp is used for archive names; empty means the current time.
	Stamp string
}

// Result describes a finished (or planned) run.
type Result struct {
	Files     []string
	Inference schema.Inference
	Schema    ddl.Schema

	// Summary is empty for a dry run.
	Summary loader.Summary
	DryRun  bool
}

// plan holds everything derived before a database is contacted.
type plan struct {
	Result
	loader loader.Config
	open   datasource.Opener
}

// Plan lists the input, infers widths and emits the DDL without touching a
// database.
func Plan(ctx context.Context, cfg config.Pipeline, deps Deps) (Result, error) {
	p, err := buildPlan(ctx, cfg, deps.withDefaults())
	return p.Result, err
}

// Run executes the whole pipeline. With runtime.dry_run it stops after
// planning.
func Run(ctx context.Context, cfg config.Pipeline, deps Deps) (Result, error) {
	deps = deps.withDefaults()
	log := deps.Log.With("job", cfg.Job)

	p, err := buildPlan(ctx, cfg, deps)
	if err != nil {
		return p.Result, err
	}
	if cfg.Runtime.DryRun {
		p.DryRun = true
		log.Info("pipeline: dry run, no database changes", "table", p.Schema.Table)
		return p.Result, nil
	}

	repo, err := deps.NewRepository(ctx, storage.Config{
		Kind:     cfg.Target.Kind,
		DSN:      cfg.Target.DSN,
		MaxConns: cfg.Target.MaxConns,
	})
	if err != nil {
		return p.Result, fmt.Errorf("init repo: %w", err)
	}
	defer repo.Close()

	err = step(cfg.Job, "ddl_apply", func() error {
		return storage.ApplySchema(ctx, repo, p.Schema.CreateStatement)
	})
	if err != nil {
		return p.Result, err
	}
	log.Info("pipeline: table recreated", "table", p.Schema.Table, "columns", len(p.Schema.Columns))

	l := loader.New(p.loader, repo, p.open, log)
	err = step(cfg.Job, "load", func() error {
		var lerr error
		p.Summary, lerr = l.Run(ctx, p.Files)
		return lerr
	})
	return p.Result, err
}

func buildPlan(ctx context.Context, cfg config.Pipeline, deps Deps) (plan, error) {
	var p plan

	if issues := config.ValidatePipeline(cfg); config.HasErrors(issues) {
		var msgs []string
		for _, iss := range issues {
			if iss.Severity == config.SeverityError {
				msgs = append(msgs, iss.Error())
			}
		}
		return p, fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
	}

	dialect, err := cfg.Parser.Dialect()
	if err != nil {
		return p, err
	}
	scrub, err := cfg.Parser.Scrubber()
	if err != nil {
		return p, err
	}
	sqlDialect, err := ddl.DialectFor(cfg.Target.Kind)
	if err != nil {
		return p, err
	}

	p.open = deps.Open
	if p.open == nil {
		opt, err := cfg.Source.FileOptions()
		if err != nil {
			return p, err
		}
		p.open = file.Opener(opt)
	}

	log := deps.Log.With("job", cfg.Job)

	err = step(cfg.Job, "list", func() error {
		files, err := cfg.Source.Files()
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("%w (dir=%q list=%q extension=%q)", ErrNoInput, cfg.Source.Dir, cfg.Source.List, cfg.Source.Extension)
		}
		p.Files = files
		return nil
	})
	if err != nil {
		return p, err
	}
	log.Info("pipeline: input listed", "files", len(p.Files))

	opts := schema.Options{Dialect: dialect, Scrub: scrub}
	err = step(cfg.Job, "infer", func() error {
		inf, err := schema.ScanFiles(ctx, p.Files, p.open, opts)
		p.Inference = inf
		return err
	})
	if err != nil {
		return p, err
	}
	log.Info("pipeline: widths inferred", "columns", len(p.Inference.Header), "rows", p.Inference.Rows)

	err = step(cfg.Job, "ddl", func() error {
		header, err := ddl.ReadHeaderLine(ctx, p.Files[0], p.open)
		if err != nil {
			return err
		}
		p.Schema, err = ddl.EmitSchema(sqlDialect, ddl.EmitRequest{
			Target:     cfg.Target.DDLTarget(),
			SourcePath: p.Files[0],
			HeaderLine: header,
			Dialect:    dialect,
			Scrub:      scrub,
			Widths:     p.Inference.Widths,
		})
		return err
	})
	if err != nil {
		return p, err
	}
	log.Debug("pipeline: ddl", "sql", p.Schema.CreateStatement)

	p.loader = loader.Config{
		Job:              cfg.Job,
		Table:            p.Schema.Table,
		Dialect:          dialect,
		Scrub:            scrub,
		Columns:          len(p.Schema.Header),
		StrictArity:      cfg.Runtime.StrictArity,
		RowsPerStatement: cfg.Runtime.RowsPerStatement,
		Multiline:        cfg.Runtime.Multiline,
		Workers:          cfg.Runtime.Workers,
		StopOnFailure:    cfg.Runtime.StopOnFailure,
		ArchiveDir:       cfg.Archive.Dir,
		Stamp:            deps.Stamp,
	}
	return p, nil
}

// step runs fn and records its duration and outcome.
func step(job, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordStep(job, name, err, time.Since(start))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.NewRepository == nil {
		d.NewRepository = storage.New
	}
	if d.Stamp == "" {
		d.Stamp = time.Now().Format(file.StampLayout)
	}
	return d
}
