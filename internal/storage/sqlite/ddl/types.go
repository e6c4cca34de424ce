package ddl

import "strconv"

// UnboundedText is the unlimited text type.
const UnboundedText = "TEXT"

// TextType returns VARCHAR(width). SQLite does not enforce the length, but
// keeping it documents the inferred width in the schema.
func TextType(width int) string {
	if width <= 0 {
		return UnboundedText
	}
	return "VARCHAR(" + strconv.Itoa(width) + ")"
}
