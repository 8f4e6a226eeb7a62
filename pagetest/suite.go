package pagetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/gpkc/pagekit"
	"github.com/stretchr/testify/require"
)

// Suite runs the shared HTTP assertions against an app built with NewApp.
// Users is the seeded dataset in id order, orders sorted by id; the suite
// derives every expectation from it.
type Suite struct {
	App   http.Handler
	Users []User

	// Relationship enables the /relationship route checks.
	Relationship bool
	// CursorTotal asserts the dataset total on /cursor responses. Stores
	// that cannot count cheaply serve zero there and leave this off.
	CursorTotal bool
	// CursorExact asserts that every page before the last carries exactly
	// the requested number of items. Off for stores where the page size
	// is a hint rather than a guarantee.
	CursorExact bool
}

// RunSuite walks the mounted routes and checks them against the dataset.
func RunSuite(t *testing.T, s Suite) {
	require.NotEmpty(t, s.Users, "suite needs a seeded dataset")

	t.Run("default", s.testDefault)
	t.Run("default_walk", s.testDefaultWalk)
	t.Run("limit_offset", s.testLimitOffset)
	t.Run("cursor_walk", s.testCursorWalk)
	t.Run("invalid_inputs", s.testInvalidInputs)

	if s.Relationship {
		t.Run("relationship", s.testRelationship)
	}
}

func (s Suite) testDefault(t *testing.T) {
	total := int64(len(s.Users))

	res := decodeOK[pagekit.Page[User]](t, s.get(t, "/default", url.Values{
		"page": {"1"},
		"size": {"10"},
	}))

	require.Equal(t, total, res.Total)
	require.Equal(t, 1, res.Page)
	require.Equal(t, 10, res.Size)
	require.Equal(t, (total+9)/10, res.Pages)
	require.Equal(t, s.flatWindow(0, 10), res.Items)

	// An empty query falls back to the default page and size.
	res = decodeOK[pagekit.Page[User]](t, s.get(t, "/default", nil))

	require.Equal(t, pagekit.DefaultPage, res.Page)
	require.Equal(t, pagekit.DefaultSize, res.Size)
	require.Equal(t, s.flatWindow(0, pagekit.DefaultSize), res.Items)
}

func (s Suite) testDefaultWalk(t *testing.T) {
	const size = 9

	first := decodeOK[pagekit.Page[User]](t, s.get(t, "/default", url.Values{
		"page": {"1"},
		"size": {strconv.Itoa(size)},
	}))

	collected := first.Items
	for page := 2; int64(page) <= first.Pages; page++ {
		res := decodeOK[pagekit.Page[User]](t, s.get(t, "/default", url.Values{
			"page": {strconv.Itoa(page)},
			"size": {strconv.Itoa(size)},
		}))

		require.Equal(t, page, res.Page)
		collected = append(collected, res.Items...)
	}

	require.Equal(t, s.flatWindow(0, len(s.Users)), collected)

	// One page past the end is empty, not an error.
	past := decodeOK[pagekit.Page[User]](t, s.get(t, "/default", url.Values{
		"page": {strconv.FormatInt(first.Pages+1, 10)},
		"size": {strconv.Itoa(size)},
	}))
	require.Empty(t, past.Items)
}

func (s Suite) testLimitOffset(t *testing.T) {
	total := len(s.Users)

	res := decodeOK[pagekit.LimitOffsetPage[User]](t, s.get(t, "/limit-offset", url.Values{
		"limit":  {"5"},
		"offset": {"7"},
	}))

	require.Equal(t, int64(total), res.Total)
	require.Equal(t, 5, res.Limit)
	require.Equal(t, 7, res.Offset)
	require.Equal(t, s.flatWindow(7, 5), res.Items)

	// A window hanging over the end returns the remainder.
	res = decodeOK[pagekit.LimitOffsetPage[User]](t, s.get(t, "/limit-offset", url.Values{
		"limit":  {"10"},
		"offset": {strconv.Itoa(total - 3)},
	}))

	require.Equal(t, s.flatWindow(total-3, 10), res.Items)
	require.Len(t, res.Items, 3)

	// An empty query falls back to the default limit at offset zero.
	res = decodeOK[pagekit.LimitOffsetPage[User]](t, s.get(t, "/limit-offset", nil))

	require.Equal(t, pagekit.DefaultSize, res.Limit)
	require.Equal(t, 0, res.Offset)
	require.Equal(t, s.flatWindow(0, pagekit.DefaultSize), res.Items)
}

func (s Suite) testCursorWalk(t *testing.T) {
	const limit = 7

	var collected []User
	token := ""
	for page := 1; ; page++ {
		require.LessOrEqual(t, page, len(s.Users)+1, "cursor walk does not terminate")

		query := url.Values{"limit": {strconv.Itoa(limit)}}
		if token != "" {
			query.Set("startToken", token)
		}

		res := decodeOK[pagekit.CursorResult[User]](t, s.get(t, "/cursor", query))

		require.Equal(t, limit, res.AppliedLimit)
		require.LessOrEqual(t, len(res.Items), limit)
		if s.CursorTotal {
			require.Equal(t, int64(len(s.Users)), res.Total)
		}
		if s.CursorExact && res.NextPageToken != "" {
			require.Len(t, res.Items, limit)
		}

		collected = append(collected, res.Items...)
		if res.NextPageToken == "" {
			break
		}
		token = res.NextPageToken
	}

	require.Equal(t, s.flatWindow(0, len(s.Users)), collected)
}

func (s Suite) testInvalidInputs(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		query    url.Values
		wantMark string
	}{
		{
			name:     "page below one",
			path:     "/default",
			query:    url.Values{"page": {"-1"}},
			wantMark: "invalid_params",
		},
		{
			name:     "size above cap",
			path:     "/default",
			query:    url.Values{"size": {"1000"}},
			wantMark: "invalid_params",
		},
		{
			name:     "page is not a number",
			path:     "/default",
			query:    url.Values{"page": {"abc"}},
			wantMark: "invalid_params",
		},
		{
			name:     "negative limit",
			path:     "/limit-offset",
			query:    url.Values{"limit": {"-5"}},
			wantMark: "invalid_params",
		},
		{
			name:     "negative offset",
			path:     "/limit-offset",
			query:    url.Values{"offset": {"-1"}},
			wantMark: "invalid_params",
		},
		{
			name:     "garbage cursor token",
			path:     "/cursor",
			query:    url.Values{"startToken": {"!!!"}},
			wantMark: "invalid_token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.get(t, tt.path, tt.query)

			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			require.Contains(t, w.Body.String(), tt.wantMark)
		})
	}
}

func (s Suite) testRelationship(t *testing.T) {
	res := decodeOK[pagekit.Page[User]](t, s.get(t, "/relationship/default", url.Values{
		"page": {"1"},
		"size": {"5"},
	}))

	require.Equal(t, s.usersWindow(0, 5), res.Items)
	require.NotEmpty(t, res.Items[0].Orders)

	loRes := decodeOK[pagekit.LimitOffsetPage[User]](t, s.get(t, "/relationship/limit-offset", url.Values{
		"limit":  {"4"},
		"offset": {"2"},
	}))

	require.Equal(t, s.usersWindow(2, 4), loRes.Items)
}

// get performs a GET against the app and returns the recorder.
func (s Suite) get(t *testing.T, path string, query url.Values) *httptest.ResponseRecorder {
	t.Helper()

	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.App.ServeHTTP(w, req)

	return w
}

// flatWindow is the expected window of users without orders.
func (s Suite) flatWindow(offset, limit int) []User {
	return window(s.Users, offset, limit, func(u User) User {
		u.Orders = nil
		return u
	})
}

// usersWindow is the expected window of users with their orders.
func (s Suite) usersWindow(offset, limit int) []User {
	return window(s.Users, offset, limit, func(u User) User { return u })
}

func window[T any](items []T, offset, limit int, transform func(T) T) []T {
	out := make([]T, 0, limit)
	if offset >= len(items) {
		return out
	}

	end := min(offset+limit, len(items))
	for _, item := range items[offset:end] {
		out = append(out, transform(item))
	}

	return out
}

func decodeOK[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	return out
}
