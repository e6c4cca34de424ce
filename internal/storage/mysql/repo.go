// Package mysql implements a MySQL storage.Repository using database/sql and
// go-sql-driver/mysql.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Config holds MySQL repository configuration.
type Config struct {
	DSN      string // go-sql-driver DSN, e.g. user:pass@tcp(host:3306)/db
	MaxConns int
}

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	db *sql.DB
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	mcfg, err := driverConfig(cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	conn, err := mysql.NewConnector(mcfg)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql: connector: %w", err)
	}
	db := sql.OpenDB(conn)
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

// driverConfig parses dsn and enables multi-statement execution, which the
// USE / DROP / CREATE script needs. It also adds NO_BACKSLASH_ESCAPES to the
// session sql_mode: inserted literals only double single quotes, so a
// backslash must stay an ordinary character.
func driverConfig(dsn string) (*mysql.Config, error) {
	mcfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql dsn: %w", err)
	}
	mcfg.MultiStatements = true

	if mcfg.Params == nil {
		mcfg.Params = map[string]string{}
	}
	mode := "@@sql_mode"
	if v := mcfg.Params["sql_mode"]; v != "" {
		mode = v
	}
	mcfg.Params["sql_mode"] = "CONCAT(" + mode + ", ',NO_BACKSLASH_ESCAPES')"
	return mcfg, nil
}

// Exec runs sql, which may hold several statements.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, sql); err != nil {
		return fmt.Errorf("mysql: exec: %w", describe(err))
	}
	return nil
}

func describe(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return fmt.Errorf("error %d: %w", me.Number, err)
	}
	return err
}
