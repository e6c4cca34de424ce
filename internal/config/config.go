// Package config defines the JSON/YAML configuration model for a bulk load
// run and the helpers that turn it into the values the parser, schema and
// loader packages take.
//
// Example (trimmed):
//
//	job: vendors
//	source:  { dir: /data/in, extension: .csv, encoding: windows-1252 }
//	parser:  { delimiter: "|" }
//	target:  { kind: mssql, dsn: "sqlserver://...", database: Staging }
//	archive: { dir: /data/done }
//	runtime: { workers: 4, rows_per_statement: 100 }
package config

import (
	"fmt"
	"runtime"

	"bulkload/internal/datasource/file"
	"bulkload/internal/ddl"
	"bulkload/internal/parser/delimited"
)

// Pipeline is the top-level object decoded from a pipeline file.
type Pipeline struct {
	// Job labels logs and metrics for the run.
	Job string `json:"job"`

	Source  Source  `json:"source"`
	Parser  Parser  `json:"parser"`
	Target  Target  `json:"target"`
	Archive Archive `json:"archive"`
	Logging Logging `json:"logging"`
	Metrics Metrics `json:"metrics"`
	Runtime Runtime `json:"runtime"`
}

// Source selects the input files. Exactly one of Dir and List is used.
type Source struct {
	// Dir is scanned (non-recursively) for files ending in Extension.
	Dir string `json:"dir"`

	// Extension filters Dir, e.g. ".csv". A trailing compression suffix on
	// the file name is accepted.
	Extension string `json:"extension"`

	// List names a text file with one input path per line. Relative entries
	// resolve against the list file's directory.
	List string `json:"list"`

	// Encoding of the input bytes, e.g. "utf-8" or "windows-1252". Empty
	// passes bytes through untouched.
	Encoding string `json:"encoding"`

	// Compression is "auto" (by suffix), "none", "gzip", "bzip2", "xz" or
	// "zstd".
	Compression string `json:"compression"`
}

// Parser configures how lines are split.
type Parser struct {
	// Delimiter is one character or a name such as "tab" or "pipe".
	Delimiter string `json:"delimiter"`

	// Quoting forces the quote-aware tokenizer on or off. Nil keeps the
	// default for the delimiter (on for comma only).
	Quoting *bool `json:"quoting"`

	Scrub Scrub `json:"scrub"`
}

// Scrub configures literal substitutions applied to every raw line.
type Scrub struct {
	// Legacy enables the :apos and :comma sentinel replacements.
	Legacy bool `json:"legacy"`

	// Replacements are applied after the legacy pairs.
	Replacements []Replacement `json:"replacements"`
}

// Replacement is one literal substitution.
type Replacement struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Target describes the destination database.
type Target struct {
	// Kind selects the storage backend and SQL dialect: mssql, postgres,
	// mysql or sqlite.
	Kind string `json:"kind"`

	DSN      string `json:"dsn"`
	MaxConns int    `json:"max_conns"`

	Database string `json:"database"`
	Schema   string `json:"schema"`

	// Table overrides the name derived from the first input file.
	Table string `json:"table"`

	FileNameColumn string `json:"file_name_column"`
}

// Archive configures where loaded files are moved.
type Archive struct {
	// Dir receives each successfully loaded file. Empty leaves files in
	// place.
	Dir string `json:"dir"`
}

// Logging configures the run logs.
type Logging struct {
	// Dir receives OutputLog_<stamp>.log and ErrorLog_<stamp>.log. Empty
	// logs to stderr only.
	Dir    string `json:"dir"`
	Level  string `json:"level"`
	Format string `json:"format"`
}

// Metrics selects the metrics backend.
type Metrics struct {
	// Backend is "none", "prometheus" or "datadog".
	Backend        string   `json:"backend"`
	PushgatewayURL string   `json:"pushgateway_url"`
	DatadogAddr    string   `json:"datadog_addr"`
	Namespace      string   `json:"namespace"`
	Tags           []string `json:"tags"`
}

// Runtime controls concurrency and statement shape.
type Runtime struct {
	Workers          int  `json:"workers"`
	RowsPerStatement int  `json:"rows_per_statement"`
	StopOnFailure    bool `json:"stop_on_failure"`
	StrictArity      bool `json:"strict_arity"`

	// Multiline puts every literal of an insert tuple on its own line.
	Multiline bool `json:"multiline"`

	// DryRun infers and prints the schema but touches no database.
	DryRun bool `json:"dry_run"`
}

// Default returns a Pipeline populated with every default value.
func Default() Pipeline {
	return Pipeline{
		Job:    "bulkload",
		Source: Source{Extension: ".csv", Compression: "auto"},
		Parser: Parser{Delimiter: ","},
		Target: Target{FileNameColumn: ddl.DefaultFileNameColumn},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Metrics: Metrics{Backend: "none"},
		Runtime: Runtime{
			Workers:          runtime.NumCPU(),
			RowsPerStatement: 1,
			StopOnFailure:    true,
			StrictArity:      true,
		},
	}
}

// Dialect returns the tokenizer dialect for p.
func (p Parser) Dialect() (delimited.Dialect, error) {
	r, err := delimited.ParseDelimiter(p.Delimiter)
	if err != nil {
		return delimited.Dialect{}, err
	}
	d := delimited.NewDialect(r)
	if p.Quoting != nil {
		d = d.WithQuoting(*p.Quoting)
	}
	if err := d.Validate(); err != nil {
		return delimited.Dialect{}, err
	}
	return d, nil
}

// Scrubber returns the configured line scrubber, or nil when scrubbing is
// disabled.
func (p Parser) Scrubber() (*delimited.Scrubber, error) {
	var pairs []string
	if p.Scrub.Legacy {
		pairs = append(pairs, delimited.LegacyReplacements...)
	}
	for _, r := range p.Scrub.Replacements {
		pairs = append(pairs, r.From, r.To)
	}
	if len(pairs) == 0 {
		return nil, nil
	}
	return delimited.NewScrubber(pairs...)
}

// FileOptions returns the options used to open every input file.
func (s Source) FileOptions() (file.Options, error) {
	c, err := file.ParseCompression(s.Compression)
	if err != nil {
		return file.Options{}, err
	}
	if _, err := file.LookupEncoding(s.Encoding); err != nil {
		return file.Options{}, err
	}
	return file.Options{Encoding: s.Encoding, Compression: c}, nil
}

// Files lists the input files in load order.
func (s Source) Files() ([]string, error) {
	switch {
	case s.List != "":
		return file.ResolveList(s.List)
	case s.Dir != "":
		return file.ListDir(s.Dir, s.Extension)
	default:
		return nil, fmt.Errorf("config: source.dir or source.list is required")
	}
}

// DDLTarget returns the naming inputs for schema emission.
func (t Target) DDLTarget() ddl.Target {
	return ddl.Target{
		Database:       t.Database,
		Schema:         t.Schema,
		Table:          t.Table,
		FileNameColumn: t.FileNameColumn,
	}
}
