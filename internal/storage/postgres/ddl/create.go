// Package ddl renders Postgres DDL for loaded flat files.
//
// Identifiers are double-quoted with embedded quotes doubled. Postgres
// supports DROP TABLE IF EXISTS directly and has no USE statement; the
// database is chosen by the connection string.
package ddl

import (
	"fmt"
	"strings"

	gddl "bulkload/internal/ddl"
)

// BuildCreateTableSQL returns the CREATE TABLE statement for def.
func BuildCreateTableSQL(def gddl.TableDef) (string, error) {
	sql, err := gddl.BuildCreateTableSQL(def, quoteIdent)
	if err != nil {
		return "", fmt.Errorf("postgres %w", err)
	}
	return sql, nil
}

// quoteIdent double-quotes an identifier segment.
//
//	name     -> "name"
//	we"ird   -> "we""ird"
func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

func quoteParts(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, quoteIdent(p))
		}
	}
	return strings.Join(out, ".")
}
