package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"bulkload/internal/logging"
	"bulkload/internal/pipeline"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the inferred column widths and the DDL without executing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg.Runtime.DryRun = true
			if err := checkConfig(cmd.ErrOrStderr(), cfg); err != nil {
				return err
			}

			run, err := logging.Setup(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Stderr: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			defer run.Close()

			res, err := pipeline.Plan(cmd.Context(), cfg, pipeline.Deps{Log: run.Logger})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "-- %d file(s), %d data row(s)\n", len(res.Files), res.Inference.Rows)
			renderWidths(out, res)
			fmt.Fprintln(out, res.Schema.CreateStatement)
			return nil
		},
	}
}

// renderWidths prints the width map in header order as an SQL comment block
// so the whole output stays executable.
func renderWidths(w io.Writer, res pipeline.Result) {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Width"})
	for _, h := range res.Inference.Header {
		n, _ := res.Inference.Widths.Width(h)
		t.AppendRow(table.Row{h, n})
	}
	for _, line := range strings.Split(t.Render(), "\n") {
		fmt.Fprintf(w, "-- %s\n", line)
	}
}
