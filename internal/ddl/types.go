package ddl

// ColumnDef describes a single column in a table definition produced or
// consumed by ddl. It intentionally uses simple, database-agnostic fields.
//
// Fields:
//   - Name: logical column name (unquoted; quoting happens at render time)
//   - SQLType: target SQL type (e.g., NVARCHAR(40), TEXT)
//   - Nullable: whether NULL is allowed
//   - PrimaryKey: whether the column is part of the primary key
//   - Default: raw default expression (e.g., 'n/a', CURRENT_TIMESTAMP)
type ColumnDef struct {
	Name       string
	SQLType    string
	Nullable   bool
	PrimaryKey bool
	Default    string
}

// TableDef holds the table name and an ordered list of columns. FQN is
// rendered verbatim, so dialects pass an already quoted, qualified name.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}

// Target names where generated tables live.
type Target struct {
	// Database is selected before the drop/create when the dialect has a
	// notion of switching databases. Optional.
	Database string

	// Schema qualifies the table name. Empty means the dialect default.
	Schema string

	// Table overrides the name derived from the representative file.
	Table string

	// FileNameColumn names the trailing column that records the source file
	// of each row. Empty means DefaultFileNameColumn.
	FileNameColumn string
}

// DefaultFileNameColumn is the name of the trailing source-file column.
const DefaultFileNameColumn = "FileName"

// FileColumn returns the effective file-name column name.
func (t Target) FileColumn() string {
	if t.FileNameColumn == "" {
		return DefaultFileNameColumn
	}
	return t.FileNameColumn
}
