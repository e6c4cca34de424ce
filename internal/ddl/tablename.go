package ddl

import (
	"path/filepath"
	"strings"
)

// compressionExts are removed before the data extension.
var compressionExts = []string{".gz", ".bz2", ".xz", ".zst"}

var tableNameScrub = strings.NewReplacer(
	" ", "_",
	"(", "",
	")", "",
	"@", "",
	"'", "",
)

// DeriveTableName turns a source path into a table name: the base name
// without its extension (a compression suffix is removed first), with spaces
// replaced by underscores and the characters ( ) @ ' removed.
//
// The sanitization is deliberately narrow; dialects still quote the result.
func DeriveTableName(path string) string {
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	for _, ext := range compressionExts {
		if strings.HasSuffix(lower, ext) {
			base = base[:len(base)-len(ext)]
			break
		}
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return SanitizeTableName(base)
}

// SanitizeTableName applies the table-name character rules to name.
func SanitizeTableName(name string) string {
	return tableNameScrub.Replace(strings.TrimSpace(name))
}

// ColumnName turns a header value into a column identifier by replacing
// spaces with underscores.
func ColumnName(header string) string {
	return strings.ReplaceAll(header, " ", "_")
}
