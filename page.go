package pagekit

// Page is the page-number response envelope.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Pages int64 `json:"pages"`
}

// NewPage assembles a Page from the fetched items, the total number of
// records matching the query and the request params. Pages is the total
// rounded up to whole pages.
func NewPage[T any](items []T, total int64, params PageParams) Page[T] {
	var pages int64
	if params.Size > 0 {
		pages = (total + int64(params.Size) - 1) / int64(params.Size)
	}

	return Page[T]{
		Items: nonNilItems(items),
		Total: total,
		Page:  params.Page,
		Size:  params.Size,
		Pages: pages,
	}
}

// LimitOffsetPage is the limit/offset response envelope.
type LimitOffsetPage[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// NewLimitOffsetPage assembles a LimitOffsetPage from the fetched items, the
// total number of records matching the query and the request params.
func NewLimitOffsetPage[T any](items []T, total int64, params LimitOffsetParams) LimitOffsetPage[T] {
	return LimitOffsetPage[T]{
		Items:  nonNilItems(items),
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
}

// CursorResult is the cursor response envelope, shared by keyset, offset and
// driver-native token flows.
type CursorResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	// AppliedLimit - the effective limit used for the query after
	// normalization.
	AppliedLimit int `json:"appliedLimit"`
	// NextPageToken - token for the next page, empty on the last page.
	NextPageToken string `json:"nextPageToken"`
}

// NewCursorResult assembles a CursorResult. nextToken must already be in its
// string token form, see Cursor.String and EncodeToken.
func NewCursorResult[T any](items []T, total int64, appliedLimit int, nextToken string) CursorResult[T] {
	return CursorResult[T]{
		Items:         nonNilItems(items),
		Total:         total,
		AppliedLimit:  appliedLimit,
		NextPageToken: nextToken,
	}
}

// nonNilItems keeps empty pages marshaling as [] rather than null.
func nonNilItems[T any](items []T) []T {
	if items == nil {
		return make([]T, 0)
	}

	return items
}
