// internal/storage/mssql/ddl/create.go

// Package ddl renders SQL Server DDL for loaded flat files.
//
// The dialect here:
//   - Uses SQL Server-style identifier quoting: [db].[schema].[table], [col].
//   - Guards the drop with IF OBJECT_ID(...) IS NOT NULL, since older
//     SQL Server versions lack DROP TABLE IF EXISTS.
//   - Sizes text columns as NVARCHAR(n), switching to NVARCHAR(MAX) past
//     the 4000 character in-row limit.
package ddl

import (
	"fmt"
	"strings"

	gddl "bulkload/internal/ddl"
)

// BuildCreateTableSQL returns the CREATE TABLE statement for def. def.FQN is
// emitted as given; column names are bracket-quoted.
func BuildCreateTableSQL(def gddl.TableDef) (string, error) {
	sql, err := gddl.BuildCreateTableSQL(def, quoteIdent)
	if err != nil {
		return "", fmt.Errorf("mssql %w", err)
	}
	return sql, nil
}

// BuildDropTableSQL returns a guarded drop for the quoted name fqn:
//
//	IF OBJECT_ID(N'[dbo].[t]', N'U') IS NOT NULL
//	  DROP TABLE [dbo].[t];
func BuildDropTableSQL(fqn string) string {
	return fmt.Sprintf(
		"IF OBJECT_ID(N'%s', N'U') IS NOT NULL\n  DROP TABLE %s;",
		strings.ReplaceAll(fqn, "'", "''"),
		fqn,
	)
}

// quoteIdent quotes a single identifier segment for SQL Server using
// bracket syntax, escaping any closing brackets.
//
//	name      -> [name]
//	weird]id  -> [weird]]id]
func quoteIdent(id string) string {
	return "[" + strings.ReplaceAll(id, "]", "]]") + "]"
}

// quoteParts quotes and dot-joins the non-empty parts, e.g.
// ("db", "dbo", "t") -> [db].[dbo].[t]. Parts are not split on dots, so a
// table named "daily.2024" stays one identifier.
func quoteParts(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, quoteIdent(p))
	}
	return strings.Join(out, ".")
}
