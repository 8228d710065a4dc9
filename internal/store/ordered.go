package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/aradaa/internal/ordering"
)

// orderedTable adapts a table with display_order and is_active columns to
// ordering.Backend. scope, when set, narrows the table to one collection.
type orderedTable[T ordering.Item] struct {
	db        *sql.DB
	table     string
	scope     string
	scopeArgs []any
	save      func(ctx context.Context, tx *sql.Tx, item T) error
}

// WithTx runs fn in a single transaction.
func (t *orderedTable[T]) WithTx(ctx context.Context, fn func(ordering.Store[T]) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&orderedTx[T]{tx: tx, t: t}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// where appends the table scope to cond.
func (t *orderedTable[T]) where(cond string, args ...any) (string, []any) {
	if t.scope == "" {
		return cond, args
	}
	return cond + " AND " + t.scope, append(args, t.scopeArgs...)
}

type orderedTx[T ordering.Item] struct {
	tx *sql.Tx
	t  *orderedTable[T]
}

func (o *orderedTx[T]) ListActive(ctx context.Context) ([]ordering.Entry, error) {
	cond, args := o.t.where("is_active = 1")
	rows, err := o.tx.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, display_order FROM %s WHERE %s`, o.t.table, cond), args...,
	)
	if err != nil {
		return nil, fmt.Errorf("listing %s order: %w", o.t.table, err)
	}
	defer rows.Close()

	var entries []ordering.Entry
	for rows.Next() {
		var e ordering.Entry
		if err := rows.Scan(&e.ID, &e.Order); err != nil {
			return nil, fmt.Errorf("scanning %s order: %w", o.t.table, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (o *orderedTx[T]) MaxOrder(ctx context.Context) (int, bool, error) {
	cond, args := o.t.where("1 = 1")
	var last sql.NullInt64
	err := o.tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT MAX(display_order) FROM %s WHERE %s`, o.t.table, cond), args...,
	).Scan(&last)
	if err != nil {
		return 0, false, fmt.Errorf("getting max %s order: %w", o.t.table, err)
	}
	return int(last.Int64), last.Valid, nil
}

func (o *orderedTx[T]) SetOrder(ctx context.Context, id string, order int) error {
	cond, args := o.t.where("id = ?", id)
	result, err := o.tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET display_order = ?, updated_at = CURRENT_TIMESTAMP WHERE %s`, o.t.table, cond),
		append([]any{order}, args...)...,
	)
	if err != nil {
		return fmt.Errorf("setting %s order: %w", o.t.table, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting %s order: %w", o.t.table, err)
	}
	if n == 0 {
		return ordering.ErrNotFound
	}
	return nil
}

func (o *orderedTx[T]) Save(ctx context.Context, item T) error {
	return o.t.save(ctx, o.tx, item)
}

// requireRow maps an UPDATE that touched nothing to ordering.ErrNotFound.
func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ordering.ErrNotFound
	}
	return nil
}

// nullString stores empty strings as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
