package ddl

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bulkload/internal/datasource"
	"bulkload/internal/parser/delimited"
	"bulkload/internal/schema"
)

// ErrEmptySource is returned when the representative file has no header
// line.
var ErrEmptySource = errors.New("ddl: representative source is empty")

// ErrEmptyTableName is returned when no usable table name remains after
// sanitization.
var ErrEmptyTableName = errors.New("ddl: table name is empty after sanitization")

// EmitRequest carries everything the emitter needs.
type EmitRequest struct {
	Target Target

	// SourcePath is the representative file; its base name becomes the table
	// name unless Target.Table is set.
	SourcePath string

	// HeaderLine is the representative file's first raw line.
	HeaderLine string

	Dialect delimited.Dialect
	Scrub   *delimited.Scrubber

	Widths schema.WidthMap
}

// Schema is the emitter's output.
type Schema struct {
	// Table is the quoted, qualified name for insert statements.
	Table string
	// TableName is the bare, sanitized table name.
	TableName string
	// Header is the tokenized representative header.
	Header []string
	// Columns lists every column, the trailing file-name column included.
	Columns []ColumnDef
	// ColumnDefinitions is the rendered column list, one definition per line.
	ColumnDefinitions string
	// CreateStatement is the full database-select, drop and create script.
	CreateStatement string
}

// EmitSchema builds the table definition for req using d.
//
// Each header column becomes a nullable text column sized from req.Widths,
// or unbounded when the name is missing from the map. A trailing unbounded
// column records the source file name. Empty header cells are named
// Column<position>.
func EmitSchema(d Dialect, req EmitRequest) (Schema, error) {
	if d == nil {
		return Schema{}, fmt.Errorf("ddl: dialect is required")
	}

	table := req.Target.Table
	if table == "" {
		table = DeriveTableName(req.SourcePath)
	} else {
		table = SanitizeTableName(table)
	}
	if table == "" {
		return Schema{}, fmt.Errorf("%w (source %q)", ErrEmptyTableName, req.SourcePath)
	}

	line := req.Scrub.Apply(delimited.StripBOM(req.HeaderLine))
	header := delimited.Tokenize(line, req.Dialect)

	cols := make([]ColumnDef, 0, len(header)+1)
	for i, h := range header {
		typ := d.UnboundedTextType()
		if w, ok := req.Widths.Width(h); ok {
			typ = d.TextType(w)
		}
		name := ColumnName(h)
		if strings.TrimSpace(name) == "" {
			name = "Column" + strconv.Itoa(i+1)
		}
		cols = append(cols, ColumnDef{Name: name, SQLType: typ, Nullable: true})
	}
	cols = append(cols, ColumnDef{
		Name:     req.Target.FileColumn(),
		SQLType:  d.UnboundedTextType(),
		Nullable: true,
	})

	rendered, err := RenderColumns(cols, d.QuoteIdent)
	if err != nil {
		return Schema{}, err
	}

	def := TableDef{FQN: d.QualifiedName(req.Target, table), Columns: cols}
	script, err := d.Script(req.Target, def)
	if err != nil {
		return Schema{}, err
	}

	return Schema{
		Table:             def.FQN,
		TableName:         table,
		Header:            header,
		Columns:           cols,
		ColumnDefinitions: strings.Join(rendered, ",\n"),
		CreateStatement:   script,
	}, nil
}

// ReadHeaderLine returns the first line of the named source. A source with
// no lines fails with ErrEmptySource.
func ReadHeaderLine(ctx context.Context, name string, open datasource.Opener) (string, error) {
	src, err := open(ctx, name)
	if err != nil {
		return "", fmt.Errorf("ddl: %w", err)
	}
	defer src.Close()

	if !src.Next() {
		if err := src.Err(); err != nil {
			return "", fmt.Errorf("ddl: read %s: %w", name, err)
		}
		return "", fmt.Errorf("%w: %s", ErrEmptySource, name)
	}
	return src.Line(), nil
}
