package file

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// LookupEncoding resolves an encoding name. Empty and "raw" return a nil
// encoding, meaning bytes pass through unchanged.
//
// Supported names (case-insensitive): utf-8 (strips a leading BOM), utf-16
// (BOM-detected, little endian fallback), utf-16le, utf-16be, windows-1250,
// windows-1252, iso-8859-1 / latin1, iso-8859-2 / latin2.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "raw":
		return nil, nil
	case "utf-8", "utf8", "utf-8-sig":
		return unicode.UTF8BOM, nil
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	case "windows-1250", "cp1250":
		return charmap.Windows1250, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	case "iso-8859-2", "latin2":
		return charmap.ISO8859_2, nil
	default:
		return nil, fmt.Errorf("file: unsupported encoding %q", name)
	}
}
