package config

import (
	"strings"
	"testing"
)

// hasIssue reports whether issues contains an Issue with the given severity,
// path, and a Message containing msgSubstr.
func hasIssue(t *testing.T, issues []Issue, sev IssueSeverity, path, msgSubstr string) bool {
	t.Helper()
	for _, iss := range issues {
		if iss.Severity == sev && iss.Path == path && strings.Contains(iss.Message, msgSubstr) {
			return true
		}
	}
	return false
}

func validPipeline() Pipeline {
	p := Default()
	p.Source.Dir = "/data/in"
	p.Target.Kind = "postgres"
	p.Target.DSN = "postgres://user@localhost/db"
	return p
}

func TestValidatePipeline_ValidMinimal(t *testing.T) {
	t.Parallel()

	issues := ValidatePipeline(validPipeline())
	if len(issues) != 0 {
		t.Fatalf("expected no issues; got: %+v", issues)
	}
	if HasErrors(issues) {
		t.Fatal("HasErrors on empty list")
	}
}

func TestValidatePipeline_Cases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(p *Pipeline)
		sev    IssueSeverity
		path   string
		substr string
	}{
		{"missing job", func(p *Pipeline) { p.Job = " " }, SeverityError, "job", "must not be empty"},
		{"no source", func(p *Pipeline) { p.Source.Dir = "" }, SeverityError, "source", "is required"},
		{"dir and list", func(p *Pipeline) { p.Source.List = "files.txt" }, SeverityError, "source", "mutually exclusive"},
		{"no extension", func(p *Pipeline) { p.Source.Extension = "" }, SeverityWarning, "source.extension", "every regular file"},
		{"bad encoding", func(p *Pipeline) { p.Source.Encoding = "ebcdic" }, SeverityError, "source", "encoding"},
		{"bad compression", func(p *Pipeline) { p.Source.Compression = "lz4" }, SeverityError, "source", "lz4"},
		{"bad delimiter", func(p *Pipeline) { p.Parser.Delimiter = "||" }, SeverityError, "parser.delimiter", "exactly one character"},
		{"quoting on pipe", func(p *Pipeline) {
			on := true
			p.Parser.Delimiter = "|"
			p.Parser.Quoting = &on
		}, SeverityWarning, "parser.quoting", "quote-aware"},
		{"empty replacement", func(p *Pipeline) {
			p.Parser.Scrub.Replacements = []Replacement{{From: "a", To: "b"}, {From: "", To: "x"}}
		}, SeverityError, "parser.scrub.replacements[1].from", "must not be empty"},
		{"missing kind", func(p *Pipeline) { p.Target.Kind = "" }, SeverityError, "target.kind", "must not be empty"},
		{"unknown kind", func(p *Pipeline) { p.Target.Kind = "oracle" }, SeverityWarning, "target.kind", "unknown target kind"},
		{"missing dsn", func(p *Pipeline) { p.Target.DSN = "" }, SeverityError, "target.dsn", "must not be empty"},
		{"missing dsn dry run", func(p *Pipeline) {
			p.Target.DSN = ""
			p.Runtime.DryRun = true
		}, SeverityWarning, "target.dsn", "must not be empty"},
		{"table sanitizes away", func(p *Pipeline) { p.Target.Table = "(@)" }, SeverityError, "target.table", "empty after sanitization"},
		{"bad level", func(p *Pipeline) { p.Logging.Level = "loud" }, SeverityError, "logging.level", "unknown level"},
		{"bad format", func(p *Pipeline) { p.Logging.Format = "xml" }, SeverityError, "logging.format", "unknown log format"},
		{"prometheus without url", func(p *Pipeline) { p.Metrics.Backend = "prometheus" }, SeverityError, "metrics.pushgateway_url", "requires"},
		{"datadog without addr", func(p *Pipeline) { p.Metrics.Backend = "datadog" }, SeverityError, "metrics.datadog_addr", "requires"},
		{"unknown metrics", func(p *Pipeline) { p.Metrics.Backend = "statsd" }, SeverityError, "metrics.backend", "unknown metrics backend"},
		{"negative workers", func(p *Pipeline) { p.Runtime.Workers = -1 }, SeverityError, "runtime.workers", "negative"},
		{"too many rows", func(p *Pipeline) { p.Runtime.RowsPerStatement = 1001 }, SeverityError, "runtime.rows_per_statement", "1000"},
		{"lenient arity", func(p *Pipeline) { p.Runtime.StrictArity = false }, SeverityWarning, "runtime.strict_arity", "as-is"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := validPipeline()
			tt.mutate(&p)
			issues := ValidatePipeline(p)
			if !hasIssue(t, issues, tt.sev, tt.path, tt.substr) {
				t.Fatalf("expected %s at %s containing %q; got %+v", tt.sev, tt.path, tt.substr, issues)
			}
			if got := HasErrors(issues); got != (tt.sev == SeverityError) {
				t.Fatalf("HasErrors = %v for %+v", got, issues)
			}
		})
	}
}

func TestIssue_Error(t *testing.T) {
	t.Parallel()

	iss := Issue{Severity: SeverityError, Path: "target.dsn", Message: "missing"}
	if got := iss.Error(); got != "error at target.dsn: missing" {
		t.Fatalf("Error() = %q", got)
	}
}
