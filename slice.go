package pagekit

import (
	"github.com/samber/lo"
)

// PaginateSlice applies page-number pagination to an in-memory collection.
// Zero params fields are normalized first, out-of-range windows clamp to an
// empty page.
func PaginateSlice[T any](items []T, params PageParams) Page[T] {
	params.Normalize()

	window := lo.Slice(items, params.Offset(), params.Offset()+params.Limit())

	return NewPage(window, int64(len(items)), params)
}

// LimitOffsetSlice applies limit/offset pagination to an in-memory collection.
func LimitOffsetSlice[T any](items []T, params LimitOffsetParams) LimitOffsetPage[T] {
	params.Normalize()

	window := lo.Slice(items, params.Offset, params.Offset+params.Limit)

	return NewLimitOffsetPage(window, int64(len(items)), params)
}

// CursorSlice applies offset-based cursor pagination to an in-memory
// collection. It honors the pager's lookahead setting, so walking a slice
// yields the same pages and tokens a database adapter would produce.
func CursorSlice[T any](items []T, pager *CursorPager[*OffsetCursor]) (CursorResult[T], error) {
	if err := pager.Validate(); err != nil {
		return CursorResult[T]{}, err
	}

	total := int64(len(items))
	offset := pager.GetCursor().GetOffset()

	if pager.IsUnlimited() {
		window := lo.Slice(items, offset, len(items))

		return NewCursorResult(window, total, NoLimit, ""), nil
	}

	window := lo.Slice(items, offset, offset+pager.GetDatasetLimit())

	window, next, err := NextPageOffsetCursor(pager, window)
	if err != nil {
		return CursorResult[T]{}, err
	}

	return NewCursorResult(window, total, pager.GetLimit(), next.String()), nil
}
