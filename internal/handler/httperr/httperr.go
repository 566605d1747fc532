package httperr

import (
	"net/http"

	"court-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusOf maps a use case error category to an HTTP status.
func StatusOf(err error) int {
	switch {
	case errs.Is(err, errs.ErrDomainValidation):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errs.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Abort writes err with the status its category maps to. Server errors never
// leak their message.
func Abort(c *gin.Context, err error) {
	status := StatusOf(err)
	msg := "Internal server error"
	if status < http.StatusInternalServerError {
		msg = errs.Cause(err).Error()
	}
	AbortWithError(c, status, err, msg, nil)
}
