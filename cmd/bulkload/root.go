package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bulkload/internal/config"
)

// errInvalidConfig is returned after the issues have been printed.
var errInvalidConfig = errors.New("configuration is invalid")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bulkload",
		Short: "Load batches of delimited files into a freshly created table",
		Long: `bulkload scans every input file to size the text columns, drops and
recreates the destination table, then inserts every data row together with
the name of the file it came from.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "pipeline file (YAML or JSON)")
	pf.Int("workers", 0, "files loaded concurrently (default: number of CPUs)")
	pf.String("delimiter", "", `column delimiter: one character or tab, comma, pipe, semicolon`)
	pf.String("log-level", "", "debug, info, warn or error")
	pf.String("metrics-backend", "", "none, prometheus or datadog")

	root.AddCommand(newRunCmd(), newSchemaCmd(), newValidateCmd())
	return root
}

// loadConfig loads the pipeline named by --config with env and flag
// overrides applied.
func loadConfig(cmd *cobra.Command) (config.Pipeline, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path, cmd.Flags())
}

// checkConfig prints every issue to w and fails on error-severity issues.
func checkConfig(w io.Writer, p config.Pipeline) error {
	issues := config.ValidatePipeline(p)
	for _, iss := range issues {
		fmt.Fprintf(w, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		return errInvalidConfig
	}
	return nil
}
