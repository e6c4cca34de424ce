package delimited

import "strings"

const utf8BOM = "\uFEFF"

// StripBOM removes a UTF-8 byte order mark from the start of a raw line.
// Callers apply it to the first line of each source only.
func StripBOM(line string) string {
	return strings.TrimPrefix(line, utf8BOM)
}
