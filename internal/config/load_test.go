package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_DefaultsOnly(t *testing.T) {
	p, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "bulkload", p.Job)
	assert.Equal(t, ".csv", p.Source.Extension)
	assert.Equal(t, ",", p.Parser.Delimiter)
	assert.Equal(t, runtime.NumCPU(), p.Runtime.Workers)
	assert.Equal(t, 1, p.Runtime.RowsPerStatement)
	assert.True(t, p.Runtime.StrictArity)
	assert.True(t, p.Runtime.StopOnFailure)
	assert.Equal(t, "none", p.Metrics.Backend)
	assert.Nil(t, p.Parser.Quoting)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, "pipeline.yaml", `
job: vendors
source:
  dir: /data/in
  extension: .txt
  encoding: windows-1252
parser:
  delimiter: pipe
  quoting: true
  scrub:
    legacy: true
    replacements:
      - from: "~"
        to: "-"
target:
  kind: mssql
  dsn: sqlserver://sa:pw@db?database=Staging
  database: Staging
runtime:
  workers: 3
  strict_arity: false
`)
	p, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "vendors", p.Job)
	assert.Equal(t, "/data/in", p.Source.Dir)
	assert.Equal(t, ".txt", p.Source.Extension)
	assert.Equal(t, "pipe", p.Parser.Delimiter)
	require.NotNil(t, p.Parser.Quoting)
	assert.True(t, *p.Parser.Quoting)
	assert.Equal(t, []Replacement{{From: "~", To: "-"}}, p.Parser.Scrub.Replacements)
	assert.Equal(t, "mssql", p.Target.Kind)
	assert.Equal(t, 3, p.Runtime.Workers)
	assert.False(t, p.Runtime.StrictArity)
	// Untouched keys keep their defaults.
	assert.True(t, p.Runtime.StopOnFailure)
	assert.Equal(t, "FileName", p.Target.FileNameColumn)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeConfig(t, "pipeline.json", `{"job":"j","target":{"kind":"sqlite","dsn":"file:x.db"},"runtime":{"rows_per_statement":50}}`)
	p, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", p.Target.Kind)
	assert.Equal(t, 50, p.Runtime.RowsPerStatement)
}

func TestLoad_EnvAndFlagPrecedence(t *testing.T) {
	path := writeConfig(t, "pipeline.yaml", "runtime:\n  workers: 2\ntarget:\n  dsn: from-file\n")

	t.Setenv("BULKLOAD_RUNTIME__WORKERS", "5")
	t.Setenv("BULKLOAD_TARGET__DSN", "from-env")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("workers", 0, "")
	fs.String("log-level", "info", "")
	fs.String("config", "", "")
	require.NoError(t, fs.Parse([]string{"--workers", "7", "--config", path}))

	p, err := Load(path, fs)
	require.NoError(t, err)

	assert.Equal(t, 7, p.Runtime.Workers, "flag beats env")
	assert.Equal(t, "from-env", p.Target.DSN, "env beats file")
	assert.Equal(t, "info", p.Logging.Level, "unset flag leaves default")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "bad.yaml", "job: [unterminated\n")
	_, err := Load(path, nil)
	require.Error(t, err)
}

func TestParser_DialectAndScrubber(t *testing.T) {
	t.Parallel()

	d, err := Parser{Delimiter: "|"}.Dialect()
	require.NoError(t, err)
	assert.Equal(t, '|', d.Delimiter)
	assert.False(t, d.SupportsQuoting)

	off := false
	d, err = Parser{Delimiter: ",", Quoting: &off}.Dialect()
	require.NoError(t, err)
	assert.False(t, d.SupportsQuoting)

	_, err = Parser{Delimiter: "ab"}.Dialect()
	require.Error(t, err)

	s, err := Parser{}.Scrubber()
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = Parser{Scrub: Scrub{Legacy: true, Replacements: []Replacement{{From: "#", To: ""}}}}.Scrubber()
	require.NoError(t, err)
	assert.Equal(t, "O'Neil, Jr", s.Apply("O:aposNeil:comma Jr#"))
}

func TestSource_Files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, n := range []string{"b.csv", "a.csv", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("h\n"), 0o644))
	}

	got, err := Source{Dir: dir, Extension: ".csv"}.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")}, got)

	_, err = Source{}.Files()
	require.Error(t, err)
}
