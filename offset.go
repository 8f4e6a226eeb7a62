package pagekit

import (
	"fmt"
	"strconv"
)

// OffsetCursor is used when an API requires cursor-based pagination but only
// LIMIT/OFFSET pagination is available.
//
// It implements Cursor and generates a token based on the last offset within
// the dataset.
type OffsetCursor struct {
	offset int
}

func NewOffsetCursor(offset int) *OffsetCursor {
	return &OffsetCursor{
		offset: offset,
	}
}

// DecodeOffsetCursor attempts to parse a base64-encoded string into
// *OffsetCursor. Failures wrap ErrInvalidToken.
func DecodeOffsetCursor(b64String string) (*OffsetCursor, error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	offsetBytes, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode base64 encoded offset cursor: %v", ErrInvalidToken, err)
	}

	offset, err := strconv.Atoi(string(offsetBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode offset cursor value: %v", ErrInvalidToken, err)
	}

	if offset < 0 {
		return nil, fmt.Errorf("%w: negative offset cursor value", ErrInvalidToken)
	}

	return &OffsetCursor{
		offset: offset,
	}, nil
}

// ToSQL returns the string form of the numeric offset value.
//
// Usage:
//
//	query := fmt.Sprintf("SELECT * FROM table OFFSET %s", p.ToSQL())
func (p *OffsetCursor) ToSQL() string {
	return strconv.Itoa(p.GetOffset())
}

// String - implements fmt.Stringer.
func (p *OffsetCursor) String() string {
	if p == nil || p.offset == 0 {
		return ""
	}

	return _encoder.EncodeToString([]byte(strconv.Itoa(p.offset)))
}

// IsEmpty - implements Cursor.
func (p *OffsetCursor) IsEmpty() bool {
	return p == nil || p.offset == 0
}

// GetOffset returns the numeric offset value.
func (p *OffsetCursor) GetOffset() int {
	if p != nil {
		return p.offset
	}

	return 0
}

// WithOffset sets the numeric offset value and returns the cursor.
func (p *OffsetCursor) WithOffset(offset int) *OffsetCursor {
	if p == nil {
		p = new(OffsetCursor)
	}

	p.offset = offset

	return p
}

// validate - implements Cursor.
func (p *OffsetCursor) validate(_ Orderings) error {
	return nil
}

var (
	_ Cursor       = (*OffsetCursor)(nil)
	_ fmt.Stringer = (*OffsetCursor)(nil)
)

// NextPageOffsetCursor builds an offset cursor for the next page of the dataset.
func NextPageOffsetCursor[T any](
	initialPager *CursorPager[*OffsetCursor],
	resultSet []T,
) ([]T, *OffsetCursor, error) {
	err := initialPager.Validate()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot build next page offset cursor: %w", err)
	}

	if IsLastPage(initialPager, resultSet) {
		return resultSet, nil, nil
	}
	resultSet = TrimResultSet(initialPager, resultSet)

	return resultSet,
		&OffsetCursor{
			offset: initialPager.cursor.GetOffset() + len(resultSet),
		},
		nil
}
