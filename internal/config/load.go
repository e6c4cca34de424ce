package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment override. A double underscore
// separates nesting levels: BULKLOAD_RUNTIME__WORKERS sets runtime.workers.
const EnvPrefix = "BULKLOAD_"

// flagKeys maps CLI flag names onto config keys. Flags not listed here are
// not configuration.
var flagKeys = map[string]string{
	"workers":         "runtime.workers",
	"delimiter":       "parser.delimiter",
	"log-level":       "logging.level",
	"metrics-backend": "metrics.backend",
	"dry-run":         "runtime.dry_run",
}

// Load builds a Pipeline from defaults, the pipeline file at path (YAML or
// JSON; optional), environment variables and explicitly set flags, in
// increasing order of precedence.
func Load(path string, flags *pflag.FlagSet) (Pipeline, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return Pipeline{}, fmt.Errorf("config: load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Pipeline{}, fmt.Errorf("config: %w", err)
		}
		// YAML is a superset of JSON, so one parser reads both.
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Pipeline{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Pipeline{}, fmt.Errorf("config: load env: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return Pipeline{}, fmt.Errorf("config: load flags: %w", err)
		}
	}

	var p Pipeline
	if err := k.UnmarshalWithConf("", &p, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return Pipeline{}, fmt.Errorf("config: decode: %w", err)
	}
	return p, nil
}

// envKey turns BULKLOAD_TARGET__DSN into target.dsn.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func defaultMap() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"job":                        d.Job,
		"source.extension":           d.Source.Extension,
		"source.compression":         d.Source.Compression,
		"parser.delimiter":           d.Parser.Delimiter,
		"target.file_name_column":    d.Target.FileNameColumn,
		"logging.level":              d.Logging.Level,
		"logging.format":             d.Logging.Format,
		"metrics.backend":            d.Metrics.Backend,
		"runtime.workers":            d.Runtime.Workers,
		"runtime.rows_per_statement": d.Runtime.RowsPerStatement,
		"runtime.stop_on_failure":    d.Runtime.StopOnFailure,
		"runtime.strict_arity":       d.Runtime.StrictArity,
	}
}
