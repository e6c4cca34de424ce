// Package mssql implements a Microsoft SQL Server storage.Repository on top
// of database/sql and go-mssqldb. Statement text is sent as a single batch,
// so DDL scripts that mix USE, IF OBJECT_ID and CREATE run unchanged.
package mssql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"
)

// Config holds MSSQL repository configuration.
type Config struct {
	DSN      string
	MaxConns int
}

// Repository is an MSSQL-backed implementation of storage.Repository.
type Repository struct {
	db *sql.DB
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	// Validate DSN early to fail fast on obvious mistakes.
	if _, err := msdsn.Parse(cfg.DSN); err != nil {
		return nil, nil, fmt.Errorf("mssql dsn: %w", err)
	}
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sql.Open: %w", err)
	}
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
		db.SetMaxIdleConns(cfg.MaxConns)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping: %w", err)
	}
	closeFn := func() { _ = db.Close() }
	return &Repository{db: db}, closeFn, nil
}

// NewFromDB wraps an already opened pool. The caller keeps ownership of db.
func NewFromDB(db *sql.DB) *Repository { return &Repository{db: db} }

// Exec runs sql as one batch.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, sql); err != nil {
		return fmt.Errorf("mssql: exec: %w", describe(err))
	}
	return nil
}

// describe adds the server error number and line to driver errors so log
// lines identify the failing statement without the full batch text.
func describe(err error) error {
	var me mssql.Error
	if errors.As(err, &me) {
		return fmt.Errorf("error %d (state %d, line %d): %w", me.Number, me.State, me.LineNo, err)
	}
	return err
}
