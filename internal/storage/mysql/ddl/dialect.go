package ddl

import (
	"strings"

	gddl "bulkload/internal/ddl"
)

// Dialect implements ddl.Dialect for MySQL.
type Dialect struct{}

var _ gddl.Dialect = Dialect{}

func init() { gddl.RegisterDialect(Dialect{}) }

func (Dialect) Name() string { return "mysql" }

func (Dialect) QuoteIdent(id string) string { return quoteIdent(id) }

// QualifiedName returns `db`.`table`. Target.Database wins over
// Target.Schema; with neither, the bare table is returned.
func (Dialect) QualifiedName(t gddl.Target, table string) string {
	db := strings.TrimSpace(t.Database)
	if db == "" {
		db = strings.TrimSpace(t.Schema)
	}
	if db == "" {
		return quoteIdent(table)
	}
	return quoteIdent(db) + "." + quoteIdent(table)
}

func (Dialect) TextType(width int) string { return TextType(width) }

func (Dialect) UnboundedTextType() string { return UnboundedText }

// Script renders USE, DROP TABLE IF EXISTS and CREATE TABLE.
func (Dialect) Script(t gddl.Target, def gddl.TableDef) (string, error) {
	create, err := BuildCreateTableSQL(def)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if db := strings.TrimSpace(t.Database); db != "" {
		sb.WriteString("USE " + quoteIdent(db) + ";\n")
	}
	sb.WriteString("DROP TABLE IF EXISTS " + def.FQN + ";\n")
	sb.WriteString(create)
	return sb.String(), nil
}
