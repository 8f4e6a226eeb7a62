package pagekit

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_OffsetCursor_Decode(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedOffset int
		expectedEmpty  bool
	}{
		{
			"zero empty",
			"",
			0,
			true,
		},
		{
			"zero encoded",
			base64.RawURLEncoding.EncodeToString([]byte("0")),
			0,
			true,
		},
		{
			"non-zero encodes",
			base64.RawURLEncoding.EncodeToString([]byte("15")),
			15,
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc, err := DecodeOffsetCursor(tt.input)
			if err != nil {
				t.Fatalf("decode failed: %v pc=%#v", err, pc)
			}

			if e := pc.IsEmpty(); e != tt.expectedEmpty {
				t.Errorf("%s: IsEmpty=%v want %v", tt.name, e, tt.expectedEmpty)
			}
			if off := pc.GetOffset(); off != tt.expectedOffset {
				t.Errorf("%s: GetOffset=%d want %d", tt.name, off, tt.expectedOffset)
			}
		})
	}
}

func Test_DecodeOffsetCursor_InvalidToken(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not base64", "%%%"},
		{"not a number", base64.RawURLEncoding.EncodeToString([]byte("abc"))},
		{"negative offset", base64.RawURLEncoding.EncodeToString([]byte("-5"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeOffsetCursor(tt.in)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func Test_NextPageOffsetCursor(t *testing.T) {
	type item struct{ ID int }

	tests := []struct {
		name        string
		description string
		pager       *CursorPager[*OffsetCursor]
		input       []item
		expectedRes []item
		expectedCur *OffsetCursor
		expectError bool
	}{
		{
			name:        "last page without lookahead",
			description: "The result set holds strictly fewer elements than the limit. With lookahead = false this marks the end of the dataset.",
			pager: func() *CursorPager[*OffsetCursor] {
				p := &CursorPager[*OffsetCursor]{limit: 3, cursor: &OffsetCursor{offset: 0}}
				p.WithSort(OrderBy{
					Column:    "id",
					Direction: DirectionASC,
				})
				return p
			}(),
			input:       []item{{1}, {2}},
			expectedRes: []item{{1}, {2}},
			expectedCur: nil,
			expectError: false,
		},
		{
			name:        "ordinary page without lookahead",
			description: "The result set holds exactly limit elements. With lookahead = false this means either the dataset continues or the next page turns out empty.",
			pager: func() *CursorPager[*OffsetCursor] {
				p := &CursorPager[*OffsetCursor]{limit: 2, cursor: &OffsetCursor{offset: 4}}
				p.WithSort(OrderBy{
					Column:    "id",
					Direction: DirectionASC,
				})
				return p
			}(),
			input:       []item{{1}, {2}},
			expectedRes: []item{{1}, {2}},
			expectedCur: &OffsetCursor{offset: 6},
			expectError: false,
		},
		{
			name:        "last page with lookahead",
			description: "The result set holds exactly limit elements. With lookahead = true this marks the end of the dataset; the full set is returned without trimming.",
			pager: func() *CursorPager[*OffsetCursor] {
				p := (&CursorPager[*OffsetCursor]{limit: 2, cursor: &OffsetCursor{offset: 2}}).WithLookahead()
				p.WithSort(OrderBy{
					Column:    "id",
					Direction: DirectionASC,
				})
				return p
			}(),
			input:       []item{{1}, {2}},
			expectedRes: []item{{1}, {2}},
			expectedCur: nil,
			expectError: false,
		},
		{
			name:        "ordinary page with lookahead",
			description: "The result set holds strictly more elements than the limit. With lookahead = true this signals a next page; the extra element only marks the dataset end and is trimmed.",
			pager: func() *CursorPager[*OffsetCursor] {
				p := (&CursorPager[*OffsetCursor]{limit: 2, cursor: &OffsetCursor{offset: 2}}).WithLookahead()
				p.WithSort(OrderBy{
					Column:    "id",
					Direction: DirectionASC,
				})
				return p
			}(),
			input:       []item{{1}, {2}, {3}},
			expectedRes: []item{{1}, {2}},
			expectedCur: &OffsetCursor{offset: 4},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Logf("Test description: %s", tt.description)

			res, cur, err := NextPageOffsetCursor(tt.pager, tt.input)

			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.expectedRes, res)

			if tt.expectedCur == nil {
				require.Nil(t, cur, "expected nil cursor")
			} else {
				require.NotNil(t, cur, "expected non-nil cursor")
				require.Equal(t, tt.expectedCur.offset, cur.offset, "unexpected cursor offset")
			}
		})
	}
}
