package ddl

import (
	"fmt"
	"sort"
	"sync"
)

// Dialect renders the SQL that differs between database engines.
type Dialect interface {
	// Name is the storage kind the dialect belongs to (e.g. "mssql").
	Name() string

	// QuoteIdent quotes one identifier segment.
	QuoteIdent(id string) string

	// QualifiedName returns the quoted, schema-qualified table name used by
	// both the DDL and the insert statements.
	QualifiedName(t Target, table string) string

	// TextType returns a text type able to hold width characters.
	TextType(width int) string

	// UnboundedTextType returns the text type without a size limit.
	UnboundedTextType() string

	// Script renders the full drop-and-create script for def. def.FQN is
	// already qualified and quoted.
	Script(t Target, def TableDef) (string, error)
}

var (
	dialectMu sync.RWMutex
	dialects  = map[string]Dialect{}
)

// RegisterDialect registers (or replaces) the Dialect for its Name. Backend
// ddl packages call it from init().
func RegisterDialect(d Dialect) {
	dialectMu.Lock()
	defer dialectMu.Unlock()
	dialects[d.Name()] = d
}

// DialectFor returns the Dialect registered for kind.
func DialectFor(kind string) (Dialect, error) {
	dialectMu.RLock()
	d, ok := dialects[kind]
	dialectMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("ddl: no dialect registered for kind %q (known: %v)", kind, Dialects())
	}
	return d, nil
}

// Dialects lists registered dialect names in sorted order.
func Dialects() []string {
	dialectMu.RLock()
	defer dialectMu.RUnlock()
	out := make([]string, 0, len(dialects))
	for k := range dialects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
