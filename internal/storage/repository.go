// Package storage defines the backend-agnostic statement sink the loader
// writes to, plus a small factory registry so callers can open a backend by
// kind without importing it.
//
// Backends live in subpackages (mssql, postgres, sqlite, mysql) and register
// themselves from init(). Import internal/storage/all to link every backend.
package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Repository executes statement text against a database.
//
// Implementations must be safe for concurrent use: the loader calls Exec
// from one goroutine per file.
type Repository interface {
	// Exec runs sql, which may contain several statements separated by
	// semicolons.
	Exec(ctx context.Context, sql string) error
	// Close releases the connection pool.
	Close()
}

// Config selects and configures a backend.
type Config struct {
	// Kind is the registered backend name, e.g. "mssql".
	Kind string
	// DSN is the driver-specific connection string.
	DSN string
	// MaxConns caps open connections. Zero leaves the driver default.
	MaxConns int
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the Factory for kind. It is typically
// called from backend packages' init() functions.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository using the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: no backend registered for kind=%q (known: %s)", cfg.Kind, strings.Join(Kinds(), ", "))
	}
	return f(ctx, cfg)
}

// Kinds lists registered backend names in sorted order.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
