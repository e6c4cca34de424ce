package ddl

import "strconv"

const (
	// MaxVarchar keeps wide files under the 65535-byte row size limit.
	MaxVarchar = 255
	// MaxText is the character capacity of TEXT with 4-byte characters.
	MaxText = 16383
)

// UnboundedText is the unlimited text type.
const UnboundedText = "LONGTEXT"

// TextType returns VARCHAR(width) for short columns, TEXT for medium ones
// and LONGTEXT beyond that.
func TextType(width int) string {
	switch {
	case width <= 0:
		return UnboundedText
	case width <= MaxVarchar:
		return "VARCHAR(" + strconv.Itoa(width) + ")"
	case width <= MaxText:
		return "TEXT"
	default:
		return UnboundedText
	}
}
