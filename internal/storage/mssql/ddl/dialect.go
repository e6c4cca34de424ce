package ddl

import (
	"strings"

	gddl "bulkload/internal/ddl"
)

// DefaultSchema qualifies tables when the target names no schema.
const DefaultSchema = "dbo"

// Dialect implements ddl.Dialect for SQL Server.
type Dialect struct{}

var _ gddl.Dialect = Dialect{}

func init() { gddl.RegisterDialect(Dialect{}) }

func (Dialect) Name() string { return "mssql" }

func (Dialect) QuoteIdent(id string) string { return quoteIdent(id) }

// QualifiedName returns [db].[schema].[table], omitting the database part
// when t.Database is empty.
func (Dialect) QualifiedName(t gddl.Target, table string) string {
	schema := t.Schema
	if schema == "" {
		schema = DefaultSchema
	}
	return quoteParts(t.Database, schema, table)
}

func (Dialect) TextType(width int) string { return TextType(width) }

func (Dialect) UnboundedTextType() string { return UnboundedText }

// Script renders:
//
//	USE [db];
//	IF OBJECT_ID(N'...', N'U') IS NOT NULL
//	  DROP TABLE ...;
//	CREATE TABLE ... (...);
func (Dialect) Script(t gddl.Target, def gddl.TableDef) (string, error) {
	create, err := BuildCreateTableSQL(def)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if db := strings.TrimSpace(t.Database); db != "" {
		sb.WriteString("USE ")
		sb.WriteString(quoteIdent(db))
		sb.WriteString(";\n")
	}
	sb.WriteString(BuildDropTableSQL(def.FQN))
	sb.WriteByte('\n')
	sb.WriteString(create)
	return sb.String(), nil
}
