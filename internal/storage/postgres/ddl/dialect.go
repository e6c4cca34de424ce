package ddl

import gddl "bulkload/internal/ddl"

// DefaultSchema qualifies tables when the target names no schema.
const DefaultSchema = "public"

// Dialect implements ddl.Dialect for Postgres.
type Dialect struct{}

var _ gddl.Dialect = Dialect{}

func init() { gddl.RegisterDialect(Dialect{}) }

func (Dialect) Name() string { return "postgres" }

func (Dialect) QuoteIdent(id string) string { return quoteIdent(id) }

// QualifiedName returns "schema"."table". Target.Database is ignored.
func (Dialect) QualifiedName(t gddl.Target, table string) string {
	schema := t.Schema
	if schema == "" {
		schema = DefaultSchema
	}
	return quoteParts(schema, table)
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
