// Package pgxpage paginates pgx v5 queries with the pagekit page-number,
// limit/offset and keyset cursor styles. Queries bind with numbered
// placeholders; the package appends its own window placeholders after the
// caller's arguments.
package pgxpage

import (
	"context"
	"fmt"
	"strings"

	"github.com/gpkc/pagekit"
	"github.com/jackc/pgx/v5"
)

// Querier is the query subset of a pgx connection. *pgxpool.Pool, *pgx.Conn
// and pgx.Tx satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Query pairs the select to paginate with its count counterpart. Args bind to
// the placeholders of both ($1..$n). Base must carry no LIMIT/OFFSET of its
// own.
type Query struct {
	Base  string
	Count string
	Args  []any
}

// CursorQuery is the keyset variant of Query. Base must end with a WHERE
// clause ("WHERE TRUE" when there is nothing to filter); the cursor predicate
// is appended to it with AND, the orderings and window after that.
type CursorQuery struct {
	Base  string
	Count string
	Args  []any
}

// Paginate runs page-number pagination: the count query plus one windowed
// select. scan is a pgx row collector, e.g. pgx.RowToStructByName[User].
func Paginate[T any](
	ctx context.Context,
	q Querier,
	query Query,
	scan pgx.RowToFunc[T],
	params pagekit.PageParams,
) (pagekit.Page[T], error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return pagekit.Page[T]{}, err
	}

	total, err := count(ctx, q, query.Count, query.Args)
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
	q Querier,
	query Query,
	scan pgx.RowToFunc[T],
	params pagekit.LimitOffsetParams,
) (pagekit.LimitOffsetPage[T], error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return pagekit.LimitOffsetPage[T]{}, err
	}

	total, err := count(ctx, q, query.Count, query.Args)
	if err != nil {
		return pagekit.LimitOffsetPage[T]{}, err
	}

	items, err := selectWindow(ctx, q, query, scan, params.Limit, params.Offset)
	if err != nil {
		return pagekit.LimitOffsetPage[T]{}, err
	}

	return pagekit.NewLimitOffsetPage(items, total, params), nil
}

// Cursor runs keyset cursor pagination. The cursor predicate is rebound from
// "?" to the numbered placeholders following query.Args, so the final
// statement stays a single prepared query. getters must cover every column
// the pager sorts by.
func Cursor[T any](
	ctx context.Context,
	q Querier,
	query CursorQuery,
	scan pgx.RowToFunc[T],
	pager *pagekit.CursorPager[*pagekit.KeysetCursor],
	getters pagekit.Getters[T],
) (pagekit.CursorResult[T], error) {
	if err := pager.Validate(); err != nil {
		return pagekit.CursorResult[T]{}, fmt.Errorf("cannot paginate: %w", err)
	}

	pred, vals := pager.GetCursor().ToSQL()

	args := make([]any, 0, len(query.Args)+len(vals)+1)
	args = append(args, query.Args...)
	for _, v := range vals {
		args = append(args, v)
	}

	var b strings.Builder
	b.WriteString(query.Base)
	b.WriteString(" AND (")
	b.WriteString(pagekit.Rebind(pred, len(query.Args)+1))
	b.WriteString(")")

	if sort := pager.GetSort(); len(sort) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(sort.ToSQL())
	}

	if !pager.IsUnlimited() {
		args = append(args, pager.GetDatasetLimit())
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}

	total, err := count(ctx, q, query.Count, query.Args)
	if err != nil {
		return pagekit.CursorResult[T]{}, err
	}

	rows, err := q.Query(ctx, b.String(), args...)
	if err != nil {
		return pagekit.CursorResult[T]{}, fmt.Errorf("select page: %w", err)
	}

	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return pagekit.CursorResult[T]{}, fmt.Errorf("collect rows: %w", err)
	}

	items, next, err := pagekit.NextPageCursor(pager, items, getters)
	if err != nil {
		return pagekit.CursorResult[T]{}, err
	}

	return pagekit.NewCursorResult(items, total, pager.GetLimit(), next.String()), nil
}

func count(ctx context.Context, q Querier, countSQL string, args []any) (int64, error) {
	var total int64
	if err := q.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}

	return total, nil
}

func selectWindow[T any](
	ctx context.Context,
	q Querier,
	query Query,
	scan pgx.RowToFunc[T],
	limit, offset int,
) ([]T, error) {
	args := make([]any, 0, len(query.Args)+2)
	args = append(args, query.Args...)
	args = append(args, limit, offset)

	windowed := fmt.Sprintf("%s LIMIT $%d OFFSET $%d", query.Base, len(query.Args)+1, len(query.Args)+2)

	rows, err := q.Query(ctx, windowed, args...)
	if err != nil {
		return nil, fmt.Errorf("select page: %w", err)
	}

	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, fmt.Errorf("collect rows: %w", err)
	}

	return items, nil
}
