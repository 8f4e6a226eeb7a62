// Package cqlpage paginates Cassandra queries. CQL has no OR predicates and
// no OFFSET, so the styles map differently than in the SQL adapters:
//
//   - Cursor rides the driver's native paging state. The opaque state bytes
//     travel in the standard pagekit token encoding, one driver page per
//     call. An empty token means the first page, an empty next token the
//     last one. Totals are not available on this path.
//   - LimitOffset emulates the offset by scanning and discarding rows; the
//     total comes from a caller-provided count statement. Fine for the
//     shallow offsets of UI paging, not for deep scans.
package cqlpage

import (
	"context"
	"fmt"

	"github.com/gocql/gocql"
	"github.com/gpkc/pagekit"
)

// ScanFunc reads the current scanner row into a value of T.
type ScanFunc[T any] func(scanner gocql.Scanner) (T, error)

// Cursor fetches one driver page of stmt. limit is the page size; outside
// 1..MaxLimit it falls back to DefaultLimit. The returned NextPageToken is
// the encoded paging state, empty on the last page. Total is always zero:
// counting a Cassandra table is a separate scan the caller must opt into.
func Cursor[T any](
	ctx context.Context,
	session *gocql.Session,
	stmt string,
	args []any,
	scan ScanFunc[T],
	limit int,
	startToken string,
) (pagekit.CursorResult[T], error) {
	if limit < 1 || limit > pagekit.MaxLimit {
		limit = pagekit.DefaultLimit
	}

	state, err := pagekit.DecodeToken(startToken)
	if err != nil {
		return pagekit.CursorResult[T]{}, err
	}

	// Setting the page state explicitly disables the driver's automatic page
	// fetching, which is what keeps this to exactly one page per call.
	iter := session.Query(stmt, args...).
		WithContext(ctx).
		PageSize(limit).
		PageState(state).
		Iter()
	nextState := iter.PageState()

	items, err := scanAll(iter, scan, -1)
	if err != nil {
		return pagekit.CursorResult[T]{}, err
	}

	return pagekit.NewCursorResult(items, 0, limit, pagekit.EncodeToken(nextState)), nil
}

// LimitOffset emulates limit/offset pagination: countStmt supplies the total,
// the select is scanned from the start and the first params.Offset rows are
// discarded. args bind to both statements.
func LimitOffset[T any](
	ctx context.Context,
	session *gocql.Session,
	stmt string,
	args []any,
	countStmt string,
	scan ScanFunc[T],
	params pagekit.LimitOffsetParams,
) (pagekit.LimitOffsetPage[T], error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return pagekit.LimitOffsetPage[T]{}, err
	}

	var total int64
	if err := session.Query(countStmt, args...).WithContext(ctx).Scan(&total); err != nil {
		return pagekit.LimitOffsetPage[T]{}, fmt.Errorf("count rows: %w", err)
	}

	iter := session.Query(stmt, args...).
		WithContext(ctx).
		PageSize(params.Offset + params.Limit).
		Iter()

	items, err := scanWindow(iter, scan, params.Offset, params.Limit)
	if err != nil {
		return pagekit.LimitOffsetPage[T]{}, err
	}

	return pagekit.NewLimitOffsetPage(items, total, params), nil
}

// scanAll drains the iterator through scan. A non-negative max stops after
// that many rows.
func scanAll[T any](iter *gocql.Iter, scan ScanFunc[T], max int) ([]T, error) {
	return scanWindow(iter, scan, 0, max)
}

// scanWindow skips offset rows, then reads up to limit rows (all of them when
// limit is negative). Err releases the iterator, so it is always consulted.
func scanWindow[T any](iter *gocql.Iter, scan ScanFunc[T], offset, limit int) ([]T, error) {
	scanner := iter.Scanner()

	var items []T
	skipped := 0
	for scanner.Next() {
		if skipped < offset {
			skipped++
			continue
		}
		if limit >= 0 && len(items) >= limit {
			break
		}

		item, err := scan(scanner)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	return items, nil
}
