// Package postgres wraps a lib/pq connection pool with transaction and bulk
// COPY helpers.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/config"
)

const pingTimeout = 5 * time.Second

type Client struct {
	DB *sql.DB
}

// New opens a pool sized from cfg and verifies it with a ping. The pool is
// closed again when the ping fails.
func New(ctx context.Context, cfg config.PostgresConfig) (*Client, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres at %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return &Client{DB: db}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// InTx runs fn in a transaction, committing on success and rolling back when
// fn returns an error.
func (c *Client) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rolling back transaction after error %v: %w", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// RowFunc appends one row to an open COPY.
type RowFunc func(values ...any) error

// CopyIn streams the rows produced by fill into table with the COPY
// protocol, in one transaction. It returns the number of rows sent. Nothing
// is committed when fill fails.
func (c *Client) CopyIn(ctx context.Context, table string, columns []string, fill func(add RowFunc) error) (int, error) {
	rows := 0
	err := c.InTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
		if err != nil {
			return fmt.Errorf("preparing copy into %s: %w", table, err)
		}
		defer stmt.Close()
		err = fill(func(values ...any) error {
			if _, err := stmt.ExecContext(ctx, values...); err != nil {
				return err
			}
			rows++
			return nil
		})
		if err != nil {
			return fmt.Errorf("copying rows into %s: %w", table, err)
		}
		if _, err := stmt.ExecContext(ctx); err != nil {
			return fmt.Errorf("flushing copy into %s: %w", table, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rows, nil
}
