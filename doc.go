package pagekit

// Package pagekit provides pagination primitives shared by the ext adapters.
//
// Overview
//
// pagekit implements three pagination styles:
//   - Page-number: PageParams/Page, the classic page+size window with a total
//     and a page count.
//   - Limit-offset: LimitOffsetParams/LimitOffsetPage, a raw window with a
//     total.
//   - Cursor: CursorPager with two token kinds. KeysetCursor encodes
//     comparison conditions against the last element of the previous page and
//     scales on large datasets; OffsetCursor is a compatibility layer over
//     LIMIT/OFFSET when true keysets are not possible.
//
// Key concepts
//   - CursorPager: orchestrates cursor pagination, lookahead, sorting and
//     next-token construction. Database application lives in the ext
//     subpackages (gormpage, pgxpage, mongopage, cqlpage and sqlpage).
//   - Orderings: defines multi-column ordering with explicit directions.
//   - Getters: maps model fields to values for building the next page cursor.
//   - PaginateSlice/LimitOffsetSlice: paginate in-memory datasets.
//
// See README for examples and usage details.
