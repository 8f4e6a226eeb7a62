package pagekit

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// _validate is shared by all params validation. The validator caches struct
// metadata, so a single instance is intentional.
var _validate = validator.New()

// PageParams is the classic page-number pagination input: a 1-based page and
// a page size. Zero values are filled with defaults by Normalize, so the type
// can be embedded into request payloads directly:
//
//	var params pagekit.PageParams
//	_ = c.ShouldBindQuery(&params)
//	params.Normalize()
type PageParams struct {
	// Page - 1-based page number.
	Page int `json:"page" form:"page" validate:"gte=1"`
	// Size - number of records per page.
	Size int `json:"size" form:"size" validate:"gte=1,lte=100"`
}

// Normalize fills zero fields with DefaultPage and DefaultSize.
func (p *PageParams) Normalize() {
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.Size == 0 {
		p.Size = DefaultSize
	}
}

// Validate checks field bounds after Normalize. Failures wrap ErrInvalidParams.
func (p PageParams) Validate() error {
	if err := _validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	return nil
}

// Limit returns the number of records the page holds.
func (p PageParams) Limit() int {
	return p.Size
}

// Offset returns the number of records to skip before the page starts.
func (p PageParams) Offset() int {
	return p.Size * (p.Page - 1)
}

// LimitOffsetParams is the raw limit/offset pagination input. A zero Limit is
// filled with DefaultSize by Normalize; a zero Offset means the beginning of
// the dataset.
type LimitOffsetParams struct {
	// Limit - maximum number of records to return.
	Limit int `json:"limit" form:"limit" validate:"gte=1,lte=100"`
	// Offset - number of records to skip.
	Offset int `json:"offset" form:"offset" validate:"gte=0"`
}

// Normalize fills a zero Limit with DefaultSize.
func (p *LimitOffsetParams) Normalize() {
	if p.Limit == 0 {
		p.Limit = DefaultSize
	}
}

// Validate checks field bounds after Normalize. Failures wrap ErrInvalidParams.
func (p LimitOffsetParams) Validate() error {
	if err := _validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	return nil
}
