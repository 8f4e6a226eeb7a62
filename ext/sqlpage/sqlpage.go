// Package sqlpage paginates plain database/sql queries with the pagekit
// page-number and limit/offset styles. The caller provides the select and its
// count counterpart; the package appends the window as "LIMIT ? OFFSET ?" and
// runs both.
//
// Keyset pagination composes manually from the core primitives:
//
//	pred, vals := cursor.ToSQL()
//	query := fmt.Sprintf("SELECT id, name FROM users WHERE %s ORDER BY %s", pred, sort.ToSQL())
//
// Drivers with numbered placeholders rebind the final text with pagekit.Rebind.
package sqlpage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gpkc/pagekit"
)

// Queryer is the query subset of *sql.DB. *sql.Tx and *sql.Conn satisfy it
// as well.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ScanFunc reads the current row into a value of T.
type ScanFunc[T any] func(rows *sql.Rows) (T, error)

// Query pairs the select to paginate with its count counterpart. Args bind to
// the placeholders of both. Base must carry no LIMIT/OFFSET of its own.
type Query struct {
	Base  string
	Count string
	Args  []any
}

// Paginate runs page-number pagination: the count query plus one windowed
// select.
func Paginate[T any](
	ctx context.Context,
	q Queryer,
	query Query,
	scan ScanFunc[T],
	params pagekit.PageParams,
) (pagekit.Page[T], error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return pagekit.Page[T]{}, err
	}

	total, err := count(ctx, q, query)
	if err != nil {
		return pagekit.Page[T]{}, err
	}

	items, err := selectWindow(ctx, q, query, scan, params.Limit(), params.Offset())
	if err != nil {
		return pagekit.Page[T]{}, err
	}

	return pagekit.NewPage(items, total, params), nil
}

// LimitOffset runs limit/offset pagination: the count query plus one windowed
// select.
func LimitOffset[T any](
	ctx context.Context,
	q Queryer,
	query Query,
	scan ScanFunc[T],
	params pagekit.LimitOffsetParams,
) (pagekit.LimitOffsetPage[T], error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return pagekit.LimitOffsetPage[T]{}, err
	}

	total, err := count(ctx, q, query)
	if err != nil {
		return pagekit.LimitOffsetPage[T]{}, err
	}

	items, err := selectWindow(ctx, q, query, scan, params.Limit, params.Offset)
	if err != nil {
		return pagekit.LimitOffsetPage[T]{}, err
	}

	return pagekit.NewLimitOffsetPage(items, total, params), nil
}

func count(ctx context.Context, q Queryer, query Query) (int64, error) {
	var total int64
	if err := q.QueryRowContext(ctx, query.Count, query.Args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}

	return total, nil
}

func selectWindow[T any](
	ctx context.Context,
	q Queryer,
	query Query,
	scan ScanFunc[T],
	limit, offset int,
) ([]T, error) {
	args := make([]any, 0, len(query.Args)+2)
	args = append(args, query.Args...)
	args = append(args, limit, offset)

	rows, err := q.QueryContext(ctx, query.Base+" LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, fmt.Errorf("select page: %w", err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	return items, nil
}
