// internal/ddl/create.go

// Package ddl defines a small, backend-agnostic model for SQL DDL and the
// schema emitter that turns an inferred header plus width map into a
// drop-and-create script.
//
// The generic renderer in this file does not assume a SQL dialect:
//
//   - It emits TableDef.FQN as-is.
//   - Column names are passed through the supplied QuoteFunc, or emitted
//     as-is when it is nil.
//   - ColumnDef.Default is treated as raw SQL.
//
// Backend-specific packages (internal/storage/<kind>/ddl) implement Dialect
// and reuse BuildCreateTableSQL with their own identifier quoting.
package ddl

import (
	"fmt"
	"strings"
)

// QuoteFunc quotes a single identifier.
type QuoteFunc func(string) string

// BuildCreateTableSQL renders a CREATE TABLE statement from a TableDef.
//
// Rules:
//
//   - t.FQN must be non-empty; it is emitted verbatim as the table name.
//
//   - Each column must have a non-empty Name and SQLType.
//
//   - A column is rendered as:
//
//     <quote(Name)> <SQLType> [NOT NULL] [DEFAULT <Default>]
//
//   - Columns with PrimaryKey == true are collected into a trailing
//     PRIMARY KEY (...) clause.
//
// The resulting statement has the form:
//
//	CREATE TABLE <FQN> (
//	  <col1-def>,
//	  <col2-def>
//	);
func BuildCreateTableSQL(t TableDef, quote QuoteFunc) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("ddl: at least one column is required")
	}

	cols, err := RenderColumns(t.Columns, quote)
	if err != nil {
		return "", fmt.Errorf("%w in table %s", err, fqn)
	}

	pks := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.PrimaryKey {
			pks = append(pks, quoteWith(quote, strings.TrimSpace(c.Name)))
		}
	}
	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n);", fqn, strings.Join(cols, ",\n  ")), nil
}

// RenderColumns renders each column definition without the PRIMARY KEY
// clause.
func RenderColumns(columns []ColumnDef, quote QuoteFunc) ([]string, error) {
	out := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("ddl: column with empty name")
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return nil, fmt.Errorf("ddl: column %s missing SQLType", name)
		}

		var sb strings.Builder
		sb.WriteString(quoteWith(quote, name))
		sb.WriteByte(' ')
		sb.WriteString(typ)
		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}
		if def := strings.TrimSpace(c.Default); def != "" {
			sb.WriteString(" DEFAULT ")
			sb.WriteString(def)
		}
		out = append(out, sb.String())
	}
	return out, nil
}

func quoteWith(q QuoteFunc, s string) string {
	if q == nil {
		return s
	}
	return q(s)
}
