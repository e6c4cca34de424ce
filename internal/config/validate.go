// This file lints a decoded Pipeline. ValidatePipeline returns issues
// (errors and warnings) that the CLI prints; any error blocks the run
// before a file is opened.
package config

import (
	"fmt"
	"strings"

	"bulkload/internal/ddl"
	"bulkload/internal/logging"
	"bulkload/internal/storage"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced to users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into
// the config, e.g. "target.dsn" or "parser.scrub.replacements[1].from".
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether issues contains an error-severity issue.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// knownKinds lists the target kinds with a dialect and a backend.
var knownKinds = map[string]struct{}{
	"mssql":    {},
	"postgres": {},
	"mysql":    {},
	"sqlite":   {},
}

// ValidatePipeline performs static validation of p. It does not mutate p.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it labels logs and metrics",
		})
	}
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateParser(p.Parser)...)
	issues = append(issues, validateTarget(p.Target, p.Runtime.DryRun)...)
	issues = append(issues, validateLogging(p.Logging)...)
	issues = append(issues, validateMetrics(p.Metrics)...)
	issues = append(issues, validateRuntime(p.Runtime)...)

	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue

	switch {
	case s.Dir == "" && s.List == "":
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source",
			Message:  "one of source.dir or source.list is required",
		})
	case s.Dir != "" && s.List != "":
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source",
			Message:  "source.dir and source.list are mutually exclusive",
		})
	}
	if s.Dir != "" && strings.TrimSpace(s.Extension) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "source.extension",
			Message:  "no extension filter; every regular file in source.dir will be loaded",
		})
	}
	if _, err := s.FileOptions(); err != nil {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source",
			Message:  err.Error(),
		})
	}

	return issues
}

func validateParser(p Parser) []Issue {
	var issues []Issue

	d, err := p.Dialect()
	if err != nil {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.delimiter",
			Message:  err.Error(),
		})
	} else if d.SupportsQuoting && d.Delimiter != ',' {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "parser.quoting",
			Message:  fmt.Sprintf("quote-aware splitting enabled for delimiter %q; double quotes in values will be consumed", d.Delimiter),
		})
	}

	for i, r := range p.Scrub.Replacements {
		if r.From == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("parser.scrub.replacements[%d].from", i),
				Message:  "replacement search string must not be empty",
			})
		}
	}

	return issues
}

func validateTarget(t Target, dryRun bool) []Issue {
	var issues []Issue

	if strings.TrimSpace(t.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "target.kind",
			Message:  "target.kind must not be empty",
		})
	} else if _, ok := knownKinds[t.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "target.kind",
			Message:  fmt.Sprintf("unknown target kind %q; ensure a matching dialect and backend are registered", t.Kind),
		})
	}

	if strings.TrimSpace(t.DSN) == "" {
		sev := SeverityError
		if dryRun {
			sev = SeverityWarning
		}
		issues = append(issues, Issue{
			Severity: sev,
			Path:     "target.dsn",
			Message:  "target.dsn must not be empty",
		})
	}
	if t.MaxConns < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "target.max_conns",
			Message:  "max_conns must not be negative",
		})
	}
	if t.Table != "" && ddl.SanitizeTableName(t.Table) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "target.table",
			Message:  "table name is empty after sanitization",
		})
	}
	if strings.TrimSpace(t.FileNameColumn) == "" && t.FileNameColumn != "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "target.file_name_column",
			Message:  "file_name_column must not be blank",
		})
	}

	return issues
}

func validateLogging(l Logging) []Issue {
	var issues []Issue

	if _, err := logging.ParseLevel(l.Level); err != nil {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "logging.level",
			Message:  err.Error(),
		})
	}
	switch strings.ToLower(l.Format) {
	case "", "text", "json":
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "logging.format",
			Message:  fmt.Sprintf("unknown log format %q; use text or json", l.Format),
		})
	}

	return issues
}

func validateMetrics(m Metrics) []Issue {
	var issues []Issue

	switch m.Backend {
	case "", "none":
	case "prometheus":
		if strings.TrimSpace(m.PushgatewayURL) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  "prometheus backend requires pushgateway_url",
			})
		}
	case "datadog":
		if strings.TrimSpace(m.DatadogAddr) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.datadog_addr",
				Message:  "datadog backend requires datadog_addr",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; use none, prometheus or datadog", m.Backend),
		})
	}

	return issues
}

func validateRuntime(r Runtime) []Issue {
	var issues []Issue

	if r.Workers < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "runtime.workers",
			Message:  "workers must not be negative",
		})
	}
	if r.RowsPerStatement < 0 || r.RowsPerStatement > storage.MaxRowsPerStatement {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "runtime.rows_per_statement",
			Message:  fmt.Sprintf("rows_per_statement=%d; must not be negative or exceed %d", r.RowsPerStatement, storage.MaxRowsPerStatement),
		})
	}
	if !r.StrictArity {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "runtime.strict_arity",
			Message:  "strict_arity is off; rows with a wrong column count are sent to the database as-is",
		})
	}

	return issues
}
