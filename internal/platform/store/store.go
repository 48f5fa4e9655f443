// Package store runs the single-statement CRUD queries of a declared table.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bizcore/bizcore/internal/platform/httpx"
	"github.com/bizcore/bizcore/internal/platform/schema"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// Change is the narrow projection returned by update and delete.
type Change struct {
	UUID uuid.UUID `json:"uuid"`
	Name *string   `json:"name,omitempty"`
}

// Label is the human readable identifier of the changed row.
func (c Change) Label() string {
	if c.Name != nil {
		return *c.Name
	}
	return c.UUID.String()
}

// Table runs queries against one declared table, scanning rows into T by
// their db tags.
type Table[T any] struct {
	db    DBTX
	def   schema.Table
	label string
}

// New builds a Table. label is the column returned alongside the key on
// update and delete; empty returns the key only.
func New[T any](db DBTX, def schema.Table, label string) *Table[T] {
	return &Table[T]{db: db, def: def, label: label}
}

// Insert stores row and returns it as persisted.
func (t *Table[T]) Insert(ctx context.Context, row T) (T, error) {
	var zero T
	values, err := t.def.Values(row)
	if err != nil {
		return zero, err
	}
	rows, err := t.db.Query(ctx, insertSQL(t.def), values...)
	if err != nil {
		return zero, fmt.Errorf("insert %s: %w", t.def.FullName(), err)
	}
	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return zero, fmt.Errorf("insert %s: %w", t.def.FullName(), err)
	}
	return created, nil
}

// Update applies set to the row keyed by id.
func (t *Table[T]) Update(ctx context.Context, id uuid.UUID, set []schema.Assignment) (Change, error) {
	query, args := updateSQL(t.def, set, id, t.label)
	return t.change(ctx, "update", query, args...)
}

// Delete removes the row keyed by id.
func (t *Table[T]) Delete(ctx context.Context, id uuid.UUID) (Change, error) {
	return t.change(ctx, "delete", deleteSQL(t.def, t.label), id)
}

// Select returns the rows matching id: zero or one.
func (t *Table[T]) Select(ctx context.Context, id uuid.UUID) ([]T, error) {
	return t.collect(ctx, selectSQL(t.def, true), id)
}

// SelectAll scans the whole table in storage order.
func (t *Table[T]) SelectAll(ctx context.Context) ([]T, error) {
	return t.collect(ctx, selectSQL(t.def, false))
}

func (t *Table[T]) collect(ctx context.Context, query string, args ...any) ([]T, error) {
	rows, err := t.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", t.def.FullName(), err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", t.def.FullName(), err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (t *Table[T]) change(ctx context.Context, verb, query string, args ...any) (Change, error) {
	var c Change
	dest := []any{&c.UUID}
	if t.label != "" {
		dest = append(dest, &c.Name)
	}
	if err := t.db.QueryRow(ctx, query, args...).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Change{}, httpx.ErrNotFound
		}
		return Change{}, fmt.Errorf("%s %s: %w", verb, t.def.FullName(), err)
	}
	return c, nil
}
