// Package ddl renders MySQL DDL for loaded flat files.
//
// Identifiers use backticks. In MySQL a schema is a database, so the
// qualified name is `db`.`table`.
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
		return "", fmt.Errorf("mysql %w", err)
	}
	return sql, nil
}

func quoteIdent(id string) string {
	return "`" + strings.ReplaceAll(id, "`", "``") + "`"
}
