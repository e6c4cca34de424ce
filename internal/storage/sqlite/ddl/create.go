// Package ddl renders SQLite DDL for loaded flat files.
//
// The dialect uses double-quoted identifiers and DROP TABLE IF EXISTS.
// SQLite has no schemas in the server sense; a Target.Schema, when given,
// names an attached database.
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
		return "", fmt.Errorf("sqlite %w", err)
	}
	return sql, nil
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
