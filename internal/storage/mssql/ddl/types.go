package ddl

import "strconv"

// MaxSizedText is the largest width rendered as NVARCHAR(n).
const MaxSizedText = 4000

// UnboundedText is the unlimited text type.
const UnboundedText = "NVARCHAR(MAX)"

// TextType returns NVARCHAR(width), or NVARCHAR(MAX) when width exceeds
// MaxSizedText. Non-positive widths fall back to NVARCHAR(MAX).
func TextType(width int) string {
	if width <= 0 || width > MaxSizedText {
		return UnboundedText
	}
	return "NVARCHAR(" + strconv.Itoa(width) + ")"
}
