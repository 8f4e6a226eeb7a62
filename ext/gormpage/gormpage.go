// Package gormpage paginates gorm queries with the three pagekit styles:
// page-number, limit/offset and cursor. The caller composes the base query
// (model, filters, preloads) and hands it over together with the pagination
// input; the package derives the COUNT and the windowed SELECT from it.
package gormpage

import (
	"context"
	"fmt"

	"github.com/gpkc/pagekit"
	"gorm.io/gorm"
)

// Paginate runs page-number pagination over the query: a COUNT plus one
// windowed SELECT. The model is inferred from T when the query does not
// already name a table.
func Paginate[T any](ctx context.Context, db *gorm.DB, params pagekit.PageParams) (pagekit.Page[T], error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return pagekit.Page[T]{}, err
	}

	total, err := count[T](ctx, db)
	if err != nil {
		return pagekit.Page[T]{}, err
	}

	var items []T
	err = db.WithContext(ctx).
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&items).Error
	if err != nil {
		return pagekit.Page[T]{}, fmt.Errorf("select page: %w", err)
	}

	return pagekit.NewPage(items, total, params), nil
}

// LimitOffset runs limit/offset pagination over the query.
func LimitOffset[T any](ctx context.Context, db *gorm.DB, params pagekit.LimitOffsetParams) (pagekit.LimitOffsetPage[T], error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return pagekit.LimitOffsetPage[T]{}, err
	}

	total, err := count[T](ctx, db)
	if err != nil {
		return pagekit.LimitOffsetPage[T]{}, err
	}

	var items []T
	err = db.WithContext(ctx).
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		return pagekit.LimitOffsetPage[T]{}, fmt.Errorf("select page: %w", err)
	}

	return pagekit.NewLimitOffsetPage(items, total, params), nil
}

// Cursor runs keyset cursor pagination over the query. getters must cover
// every column the pager sorts by; they extract the next-page position from
// the last returned row.
func Cursor[T any](
	ctx context.Context,
	db *gorm.DB,
	pager *pagekit.CursorPager[*pagekit.KeysetCursor],
	getters pagekit.Getters[T],
) (pagekit.CursorResult[T], error) {
	q, err := Apply(db.WithContext(ctx), pager)
	if err != nil {
		return pagekit.CursorResult[T]{}, err
	}

	total, err := count[T](ctx, db)
	if err != nil {
		return pagekit.CursorResult[T]{}, err
	}

	var items []T
	if err := q.Find(&items).Error; err != nil {
		return pagekit.CursorResult[T]{}, fmt.Errorf("select page: %w", err)
	}

	items, next, err := pagekit.NextPageCursor(pager, items, getters)
	if err != nil {
		return pagekit.CursorResult[T]{}, err
	}

	return pagekit.NewCursorResult(items, total, pager.GetLimit(), next.String()), nil
}

// OffsetCursor runs offset-backed cursor pagination over the query. It keeps
// the cursor wire format while the store only supports LIMIT/OFFSET.
func OffsetCursor[T any](
	ctx context.Context,
	db *gorm.DB,
	pager *pagekit.CursorPager[*pagekit.OffsetCursor],
) (pagekit.CursorResult[T], error) {
	q, err := Apply(db.WithContext(ctx), pager)
	if err != nil {
		return pagekit.CursorResult[T]{}, err
	}

	total, err := count[T](ctx, db)
	if err != nil {
		return pagekit.CursorResult[T]{}, err
	}

	var items []T
	if err := q.Find(&items).Error; err != nil {
		return pagekit.CursorResult[T]{}, fmt.Errorf("select page: %w", err)
	}

	items, next, err := pagekit.NextPageOffsetCursor(pager, items)
	if err != nil {
		return pagekit.CursorResult[T]{}, err
	}

	return pagekit.NewCursorResult(items, total, pager.GetLimit(), next.String()), nil
}

// count runs the COUNT side of pagination on a fresh session, so the window
// clauses of the SELECT never leak into it.
func count[T any](ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	if err := db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}

	return total, nil
}
