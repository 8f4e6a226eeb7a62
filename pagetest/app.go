package pagetest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gpkc/pagekit"
	"github.com/gpkc/pagekit/ginpage"
	"github.com/rs/zerolog"
)

// Backend serves the flat user routes. Every adapter integration test
// implements it over its own store.
type Backend interface {
	Users(ctx context.Context, params pagekit.PageParams) (pagekit.Page[User], error)
	UsersLimitOffset(ctx context.Context, params pagekit.LimitOffsetParams) (pagekit.LimitOffsetPage[User], error)
	UsersCursor(ctx context.Context, params pagekit.CursorParams) (pagekit.CursorResult[User], error)
}

// RelationshipBackend additionally serves users with their orders attached.
// Backends over stores without relationship support just do not implement it.
type RelationshipBackend interface {
	UsersWithOrders(ctx context.Context, params pagekit.PageParams) (pagekit.Page[User], error)
	UsersWithOrdersLimitOffset(ctx context.Context, params pagekit.LimitOffsetParams) (pagekit.LimitOffsetPage[User], error)
}

// NewApp mounts the pagination routes over the backend:
//
//	GET /default                      page-number pagination
//	GET /limit-offset                 limit/offset pagination
//	GET /cursor                       cursor pagination
//	GET /relationship/default         page-number, orders attached
//	GET /relationship/limit-offset    limit/offset, orders attached
//
// The relationship routes appear only when the backend implements
// RelationshipBackend.
func NewApp(log zerolog.Logger, backend Backend) *gin.Engine {
	r := gin.New()
	r.Use(ginpage.Logger(log), gin.Recovery())

	r.GET("/default", func(c *gin.Context) {
		params, err := ginpage.BindPage(c)
		if err != nil {
			ginpage.WriteError(c, err)
			return
		}

		page, err := backend.Users(c.Request.Context(), params)
		respond(c, page, err)
	})

	r.GET("/limit-offset", func(c *gin.Context) {
		params, err := ginpage.BindLimitOffset(c)
		if err != nil {
			ginpage.WriteError(c, err)
			return
		}

		page, err := backend.UsersLimitOffset(c.Request.Context(), params)
		respond(c, page, err)
	})

	r.GET("/cursor", func(c *gin.Context) {
		params, err := ginpage.BindCursor(c)
		if err != nil {
			ginpage.WriteError(c, err)
			return
		}

		result, err := backend.UsersCursor(c.Request.Context(), params)
		respond(c, result, err)
	})

	if rel, ok := backend.(RelationshipBackend); ok {
		r.GET("/relationship/default", func(c *gin.Context) {
			params, err := ginpage.BindPage(c)
			if err != nil {
				ginpage.WriteError(c, err)
				return
			}

			page, err := rel.UsersWithOrders(c.Request.Context(), params)
			respond(c, page, err)
		})

		r.GET("/relationship/limit-offset", func(c *gin.Context) {
			params, err := ginpage.BindLimitOffset(c)
			if err != nil {
				ginpage.WriteError(c, err)
				return
			}

			page, err := rel.UsersWithOrdersLimitOffset(c.Request.Context(), params)
			respond(c, page, err)
		})
	}

	return r
}

func respond[T any](c *gin.Context, data T, err error) {
	if err != nil {
		ginpage.WriteError(c, err)
		return
	}

	ginpage.WriteData(c, http.StatusOK, data)
}

// SliceBackend serves the dataset straight from memory. It is the reference
// backend: the suite's expectations are definitionally true over it, and the
// store-backed backends must behave the same.
type SliceBackend struct {
	dataset Dataset
}

func NewSliceBackend(dataset Dataset) *SliceBackend {
	return &SliceBackend{dataset: dataset}
}

// Users - implements Backend.
func (b *SliceBackend) Users(_ context.Context, params pagekit.PageParams) (pagekit.Page[User], error) {
	return pagekit.PaginateSlice(b.dataset.FlatUsers(), params), nil
}

// UsersLimitOffset - implements Backend.
func (b *SliceBackend) UsersLimitOffset(_ context.Context, params pagekit.LimitOffsetParams) (pagekit.LimitOffsetPage[User], error) {
	return pagekit.LimitOffsetSlice(b.dataset.FlatUsers(), params), nil
}

// UsersCursor - implements Backend. Slices have no keyset to compare
// against, so the cursor is offset-backed.
func (b *SliceBackend) UsersCursor(_ context.Context, params pagekit.CursorParams) (pagekit.CursorResult[User], error) {
	pager, err := params.DecodeOffset()
	if err != nil {
		return pagekit.CursorResult[User]{}, err
	}

	return pagekit.CursorSlice(b.dataset.FlatUsers(), pager.WithLookahead())
}

// UsersWithOrders - implements RelationshipBackend.
func (b *SliceBackend) UsersWithOrders(_ context.Context, params pagekit.PageParams) (pagekit.Page[User], error) {
	return pagekit.PaginateSlice(b.dataset.Users, params), nil
}

// UsersWithOrdersLimitOffset - implements RelationshipBackend.
func (b *SliceBackend) UsersWithOrdersLimitOffset(_ context.Context, params pagekit.LimitOffsetParams) (pagekit.LimitOffsetPage[User], error) {
	return pagekit.LimitOffsetSlice(b.dataset.Users, params), nil
}

var (
	_ Backend             = (*SliceBackend)(nil)
	_ RelationshipBackend = (*SliceBackend)(nil)
)
