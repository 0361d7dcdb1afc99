package responses

import (
	"errors"
	"net/http"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// Error writes a taxonomy error as an HTTP response. Internal errors get a
// generic message; storage and stack detail never reach the caller.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, apperrors.ErrRequiredField):
		status = http.StatusBadRequest
		message = err.Error()
	}

	c.JSON(status, NewErrorResponse(message))
}
