package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/steppulse/steppulse/internal/domain/apperr"
	"github.com/steppulse/steppulse/internal/domain/dto"
)

// ErrorHandler translates errors attached to the gin context into the
// standardized JSON error body. Handlers that already wrote a response
// are left alone.
//
// The engine's error kinds map to status codes here, at the transport
// boundary, keeping HTTP concerns out of the engine:
//   - validation kinds (ValidationFailed, InvalidUserID, InvalidTimeRange,
//     IllegalArgument) -> 400
//   - NotFound -> 404
//   - anything else (storage failures included) -> 500
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	status := StatusFor(err)
	c.JSON(status, dto.NewErrorResponse(http.StatusText(status), err))
}

// StatusFor maps an engine error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case apperr.IsInvalidInput(err):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithError writes the standardized error body with the given
// status and stops the handler chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
