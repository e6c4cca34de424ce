package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writePipeline(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "pipeline.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func inputDir(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	require.NoError(t, os.MkdirAll(in, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "orders.csv"), []byte("id;item\n1;lamp\n2;desk chair\n"), 0o644))
	return dir, in
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()

	good := writePipeline(t, dir, "source: {dir: /tmp}\ntarget: {kind: sqlite, dsn: x.db}\n")
	out, _, err := execute(t, "validate", "--config", good)
	require.NoError(t, err)
	assert.Contains(t, out, "configuration is valid")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("target: {kind: sqlite}\n"), 0o644))
	_, errOut, err := execute(t, "validate", "--config", bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidConfig))
	assert.Contains(t, errOut, "error: target.dsn")
	assert.Contains(t, errOut, "error: source")
}

func TestValidateCommand_FlagOverride(t *testing.T) {
	dir := t.TempDir()
	cfg := writePipeline(t, dir, "source: {dir: /tmp}\ntarget: {kind: sqlite, dsn: x.db}\n")

	_, errOut, err := execute(t, "validate", "--config", cfg, "--metrics-backend", "carrier-pigeon")
	require.Error(t, err)
	assert.Contains(t, errOut, "metrics.backend")
}

func TestSchemaCommand(t *testing.T) {
	dir, in := inputDir(t)
	cfg := writePipeline(t, dir, "source: {dir: "+in+"}\ntarget: {kind: postgres, dsn: postgres://x}\n")

	out, _, err := execute(t, "schema", "--config", cfg, "--delimiter", ";", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "-- 1 file(s), 2 data row(s)")
	assert.Contains(t, out, `DROP TABLE IF EXISTS "public"."orders";`)
	assert.Contains(t, out, `"item" VARCHAR(10)`)
	assert.Regexp(t, `(?m)^-- .*\bitem\b.*\b10\b`, out)

	// The source file is untouched.
	_, err = os.Stat(filepath.Join(in, "orders.csv"))
	assert.NoError(t, err)
}

func TestRunCommand_SQLite(t *testing.T) {
	dir, in := inputDir(t)
	logs := filepath.Join(dir, "logs")
	cfg := writePipeline(t, dir, strings.Join([]string{
		"job: cli",
		"source: {dir: " + in + "}",
		"parser: {delimiter: semicolon}",
		"target: {kind: sqlite, dsn: " + filepath.Join(dir, "db.sqlite") + "}",
		"archive: {dir: " + filepath.Join(dir, "done") + "}",
		"logging: {dir: " + logs + ", level: warn}",
		"",
	}, "\n"))

	out, _, err := execute(t, "run", "--config", cfg, "--workers", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "loaded=1 failed=0 skipped=0 rows=2")

	entries, err := os.ReadDir(logs)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Len(t, names, 2)
	assert.True(t, strings.HasPrefix(names[0], "ErrorLog_"), names[0])
	assert.True(t, strings.HasPrefix(names[1], "OutputLog_"), names[1])

	archived, err := os.ReadDir(filepath.Join(dir, "done"))
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.True(t, strings.HasPrefix(archived[0].Name(), "orders_"))
}

func TestRunCommand_DryRunPrintsDDL(t *testing.T) {
	dir, in := inputDir(t)
	cfg := writePipeline(t, dir, "source: {dir: "+in+"}\nparser: {delimiter: ';'}\ntarget: {kind: mysql, database: stage}\n")

	out, _, err := execute(t, "run", "--config", cfg, "--dry-run", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "USE `stage`;")
	assert.Contains(t, out, "CREATE TABLE `stage`.`orders`")
}

func TestRunCommand_MissingConfig(t *testing.T) {
	_, _, err := execute(t, "run", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
