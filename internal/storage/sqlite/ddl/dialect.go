package ddl

import (
	"strings"

	gddl "bulkload/internal/ddl"
)

// Dialect implements ddl.Dialect for SQLite.
type Dialect struct{}

var _ gddl.Dialect = Dialect{}

func init() { gddl.RegisterDialect(Dialect{}) }

func (Dialect) Name() string { return "sqlite" }

func (Dialect) QuoteIdent(id string) string { return quoteIdent(id) }

// QualifiedName returns "table", or "schema"."table" when a schema is set.
func (Dialect) QualifiedName(t gddl.Target, table string) string {
	if s := strings.TrimSpace(t.Schema); s != "" {
		return quoteIdent(s) + "." + quoteIdent(table)
	}
	return quoteIdent(table)
}

func (Dialect) TextType(width int) string { return TextType(width) }

func (Dialect) UnboundedTextType() string { return UnboundedText }

// Script renders DROP TABLE IF EXISTS followed by CREATE TABLE.
func (Dialect) Script(_ gddl.Target, def gddl.TableDef) (string, error) {
	create, err := BuildCreateTableSQL(def)
	if err != nil {
		return "", err
	}
	return "DROP TABLE IF EXISTS " + def.FQN + ";\n" + create, nil
}
