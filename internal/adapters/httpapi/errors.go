package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikey/spam-insight/internal/annotate"
	"github.com/mikey/spam-insight/internal/core"
)

// httpError is an error with the status code it is reported with
type httpError struct {
	Code    int
	Message string
}

func (e *httpError) Error() string {
	return e.Message
}

func newHTTPError(code int, message string) *httpError {
	return &httpError{Code: code, Message: message}
}

var (
	errInvalidBody   = newHTTPError(http.StatusBadRequest, "Invalid request body")
	errEmptyMessage  = newHTTPError(http.StatusBadRequest, "Message text is empty")
	errBatchTooLarge = newHTTPError(http.StatusBadRequest, fmt.Sprintf("Batch too large (max %d messages)", MaxBatchSize))
	errBadRenderer   = newHTTPError(http.StatusBadRequest, "Unknown renderer")
	errAnalysis      = newHTTPError(http.StatusInternalServerError, "Analysis failed")
)

func (h *handler) mapError(err error) *httpError {
	var he *httpError
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, core.ErrEmptyMessage):
		return errEmptyMessage
	case errors.Is(err, annotate.ErrUnknownRenderer):
		return errBadRenderer
	default:
		return errAnalysis
	}
}

func (h *handler) fail(c *gin.Context, err error) {
	he := h.mapError(err)
	c.JSON(he.Code, resp{ErrorCode: he.Code, Message: he.Message})
}
