package ginpage

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gpkc/pagekit"
)

// ErrorPayload is the canonical error envelope returned by paginated APIs.
type ErrorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MapError converts a pagination error into an HTTP status and payload.
// Extend here as new error categories emerge.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	switch {
	case errors.Is(err, pagekit.ErrInvalidParams):
		return http.StatusBadRequest, ErrorPayload{Error: "invalid_params", Message: err.Error()}
	case errors.Is(err, pagekit.ErrInvalidToken):
		return http.StatusBadRequest, ErrorPayload{Error: "invalid_token", Message: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
