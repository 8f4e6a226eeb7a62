package ginpage_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gpkc/pagekit"
	"github.com/gpkc/pagekit/ginpage"
)

func newBindRouter(register func(*gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	register(r)
	return r
}

func TestBindPage(t *testing.T) {
	var (
		got     pagekit.PageParams
		bindErr error
	)
	r := newBindRouter(func(r *gin.Engine) {
		r.GET("/", func(c *gin.Context) {
			got, bindErr = ginpage.BindPage(c)
			c.Status(http.StatusOK)
		})
	})

	tests := []struct {
		name     string
		query    string
		wantErr  bool
		wantPage int
		wantSize int
	}{
		{"defaults fill", "", false, pagekit.DefaultPage, pagekit.DefaultSize},
		{"explicit values", "?page=3&size=20", false, 3, 20},
		{"negative page rejected", "?page=-1", true, 0, 0},
		{"oversized size rejected", "?size=500", true, 0, 0},
		{"non-numeric rejected", "?page=abc", true, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))

			if tt.wantErr {
				if !errors.Is(bindErr, pagekit.ErrInvalidParams) {
					t.Fatalf("expected ErrInvalidParams, got %v", bindErr)
				}
				return
			}
			if bindErr != nil {
				t.Fatalf("unexpected error: %v", bindErr)
			}
			if got.Page != tt.wantPage || got.Size != tt.wantSize {
				t.Fatalf("params=(%d,%d) want (%d,%d)", got.Page, got.Size, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestBindLimitOffset(t *testing.T) {
	var (
		got     pagekit.LimitOffsetParams
		bindErr error
	)
	r := newBindRouter(func(r *gin.Engine) {
		r.GET("/", func(c *gin.Context) {
			got, bindErr = ginpage.BindLimitOffset(c)
			c.Status(http.StatusOK)
		})
	})

	tests := []struct {
		name       string
		query      string
		wantErr    bool
		wantLimit  int
		wantOffset int
	}{
		{"defaults fill", "", false, pagekit.DefaultSize, 0},
		{"explicit values", "?limit=10&offset=90", false, 10, 90},
		{"negative offset rejected", "?offset=-5", true, 0, 0},
		{"oversized limit rejected", "?limit=101", true, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))

			if tt.wantErr {
				if !errors.Is(bindErr, pagekit.ErrInvalidParams) {
					t.Fatalf("expected ErrInvalidParams, got %v", bindErr)
				}
				return
			}
			if bindErr != nil {
				t.Fatalf("unexpected error: %v", bindErr)
			}
			if got.Limit != tt.wantLimit || got.Offset != tt.wantOffset {
				t.Fatalf("params=(%d,%d) want (%d,%d)", got.Limit, got.Offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestBindCursor(t *testing.T) {
	var (
		got     pagekit.CursorParams
		bindErr error
	)
	r := newBindRouter(func(r *gin.Engine) {
		r.GET("/", func(c *gin.Context) {
			got, bindErr = ginpage.BindCursor(c)
			c.Status(http.StatusOK)
		})
	})

	token := pagekit.NewOffsetCursor(30).String()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?limit=7&startToken="+token, nil))

	if bindErr != nil {
		t.Fatalf("unexpected error: %v", bindErr)
	}
	if got.Limit != 7 || got.StartToken != token {
		t.Fatalf("params=%+v", got)
	}
}
