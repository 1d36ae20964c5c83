package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, kind Kind, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Kind:    kind,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, KindValidation, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, KindNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, KindInternal, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, KindAuthRequired, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, KindPermissionDenied, code, message)
}

// StatusFor maps a Kind onto the HTTP status the API promises for it.
func StatusFor(kind Kind) int {
	switch kind {
	case KindAuthRequired:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindSlotUnavailable:
		return http.StatusBadRequest
	case KindExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as a structured error body. Unclassified errors are
// reported as a generic internal failure so driver details never leak.
func Respond(c *gin.Context, err error) {
	var be *Error
	if errors.As(err, &be) {
		Write(c, StatusFor(be.Kind), be.Kind, be.Code, be.Message)
		return
	}
	Internal(c, "internal_error", "Unexpected error.")
}
