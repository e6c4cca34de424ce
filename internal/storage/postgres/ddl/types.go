package ddl

import "strconv"

// MaxSizedText is the largest length Postgres accepts for VARCHAR(n).
const MaxSizedText = 10485760

// UnboundedText is the unlimited text type.
const UnboundedText = "TEXT"

// TextType returns VARCHAR(width), or TEXT for out-of-range widths.
func TextType(width int) string {
	if width <= 0 || width > MaxSizedText {
		return UnboundedText
	}
	return "VARCHAR(" + strconv.Itoa(width) + ")"
}
