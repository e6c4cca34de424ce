package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"bulkload/internal/loader"
	"bulkload/internal/logging"
	"bulkload/internal/pipeline"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Infer the schema, recreate the table and load every file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := checkConfig(cmd.ErrOrStderr(), cfg); err != nil {
				return err
			}

			run, err := logging.Setup(logging.Options{
				Dir:    cfg.Logging.Dir,
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Stderr: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			defer run.Close()
			log := run.Logger

			flush, err := setupMetrics(cfg, log)
			if err != nil {
				return err
			}
			defer flush()

			log.Info("pipeline: start",
				"job", cfg.Job,
				"target", cfg.Target.Kind,
				"workers", cfg.Runtime.Workers,
				"rows_per_statement", cfg.Runtime.RowsPerStatement,
				"dry_run", cfg.Runtime.DryRun,
			)

			res, err := pipeline.Run(cmd.Context(), cfg, pipeline.Deps{Log: log, Stamp: run.Stamp})
			if res.DryRun {
				fmt.Fprintln(cmd.OutOrStdout(), res.Schema.CreateStatement)
			} else if len(res.Summary.Results) > 0 {
				printSummary(cmd.OutOrStdout(), res.Summary)
			}
			if err != nil {
				log.Error("pipeline: failed", "err", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().Bool("dry-run", false, "infer and print the DDL without touching the database")
	return cmd
}

func printSummary(w io.Writer, s loader.Summary) {
	for _, r := range s.Results {
		status := "ok"
		if r.Err != nil {
			status = "FAILED: " + r.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%d rows\t%d statements\t%s\t%s\n",
			r.Path, r.Rows, r.Statements, r.Elapsed.Round(time.Millisecond), status)
	}
	fmt.Fprintf(w, "loaded=%d failed=%d skipped=%d rows=%d elapsed=%s\n",
		s.Loaded, s.Failed, s.Skipped, s.Rows, s.Elapsed.Round(time.Millisecond))
}
