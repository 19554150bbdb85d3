package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Zachkp/portfolio/internal/domain"
)

// collection is the shared SQL for an ordered content table. Rows are laid
// out as id, fields..., created_at in every statement.
type collection[T domain.Entity] struct {
	db      *sql.DB
	table   string
	fields  []string
	selects []string
	values  func(T) []any
	scan    func(rowScanner) (T, error)
}

func (c *collection[T]) selectSQL() string {
	return "SELECT id, " + strings.Join(c.selects, ", ") + ", created_at FROM " + c.table
}

func (c *collection[T]) List(ctx context.Context) ([]T, error) {
	rows, err := c.db.QueryContext(ctx, c.selectSQL()+" ORDER BY order_index, created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		record, err := c.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func (c *collection[T]) GetByID(ctx context.Context, id string) (T, error) {
	record, err := c.scan(c.db.QueryRowContext(ctx, c.selectSQL()+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, domain.ErrNotFound
	}
	return record, err
}

func (c *collection[T]) Create(ctx context.Context, record T) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(c.fields)+2), ", ")
	query := "INSERT INTO " + c.table + " (id, " + strings.Join(c.fields, ", ") + ", created_at) VALUES (" + placeholders + ")"

	args := make([]any, 0, len(c.fields)+2)
	args = append(args, record.GetID())
	args = append(args, c.values(record)...)
	args = append(args, record.Created().UTC())

	_, err := c.db.ExecContext(ctx, query, args...)
	return err
}

func (c *collection[T]) Update(ctx context.Context, record T) error {
	sets := make([]string, len(c.fields))
	for i, f := range c.fields {
		sets[i] = f + " = ?"
	}
	query := "UPDATE " + c.table + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	args := append(c.values(record), record.GetID())
	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (c *collection[T]) Delete(ctx context.Context, id string) error {
	result, err := c.db.ExecContext(ctx, "DELETE FROM "+c.table+" WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (c *collection[T]) Count(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(&n)
	return n, err
}

func expectAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// coalesced wraps nullable text columns so they scan into plain strings.
func coalesced(fields []string, nullableCols ...string) []string {
	isNullable := make(map[string]bool, len(nullableCols))
	for _, c := range nullableCols {
		isNullable[c] = true
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		if isNullable[f] {
			out[i] = "COALESCE(" + f + ", '')"
		} else {
			out[i] = f
		}
	}
	return out
}
