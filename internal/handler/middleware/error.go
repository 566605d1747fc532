package middleware

import (
	"log/slog"
	"net/http"

	"court-booking/internal/handler/httperr"
	"court-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors that handlers attached with c.Error but never wrote.
// Responses built by httperr pass through untouched; anything else is mapped by its category.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			if resp, ok := c.Errors[i].Meta.(httperr.Response); ok && c.Errors[i].IsType(gin.ErrorTypePublic) {
				c.JSON(resp.Status, resp)
				return
			}
		}

		last := c.Errors.Last().Err
		resp := httperr.Response{Status: httperr.StatusOf(last)}
		if resp.Status >= http.StatusInternalServerError {
			slog.Error("unhandled request error",
				"request_id", GetRequestID(c),
				"error", last.Error(),
				"stack", errs.ExtractStackLines(last, 8),
			)
			resp.Error.Message = "Internal server error"
		} else {
			resp.Error.Message = errs.Cause(last).Error()
		}
		c.JSON(resp.Status, resp)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("recovered from panic",
					"error", rec,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
				)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"
				c.AbortWithStatusJSON(resp.Status, resp)
			}
		}()
		c.Next()
	}
}
