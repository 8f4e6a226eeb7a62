// Package ginpage binds pagination params from gin requests and writes the
// canonical response envelopes. Handlers stay thin: bind, run the adapter,
// write.
package ginpage

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gpkc/pagekit"
)

// BindPage reads page-number params from the query string, fills defaults and
// validates bounds. Failures wrap pagekit.ErrInvalidParams, so WriteError
// renders them as 400.
func BindPage(c *gin.Context) (pagekit.PageParams, error) {
	var params pagekit.PageParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return params, fmt.Errorf("%w: %v", pagekit.ErrInvalidParams, err)
	}

	params.Normalize()
	if err := params.Validate(); err != nil {
		return params, err
	}

	return params, nil
}

// BindLimitOffset reads limit/offset params from the query string, fills
// defaults and validates bounds.
func BindLimitOffset(c *gin.Context) (pagekit.LimitOffsetParams, error) {
	var params pagekit.LimitOffsetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return params, fmt.Errorf("%w: %v", pagekit.ErrInvalidParams, err)
	}

	params.Normalize()
	if err := params.Validate(); err != nil {
		return params, err
	}

	return params, nil
}

// BindCursor reads cursor params (limit, startToken) from the query string.
// The limit is normalized and the token validated later, during
// CursorParams.Decode against concrete orderings.
func BindCursor(c *gin.Context) (pagekit.CursorParams, error) {
	var params pagekit.CursorParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return params, fmt.Errorf("%w: %v", pagekit.ErrInvalidParams, err)
	}

	return params, nil
}
