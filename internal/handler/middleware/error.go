package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"gear-ledger/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

// ErrorHandler renders errors that handlers recorded without writing a body.
// Public errors carry their own response; a private error is classified by kind.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if len(c.Errors) == 0 {
			if c.Writer.Status() != http.StatusOK {
				c.Writer.WriteHeaderNow()
			}
			return
		}

		for i := len(c.Errors) - 1; i >= 0; i-- {
			if resp, ok := c.Errors[i].Meta.(httperr.Response); ok && c.Errors[i].IsType(gin.ErrorTypePublic) {
				c.JSON(resp.Status, resp)
				return
			}
		}

		last := c.Errors.Last().Err
		status := httperr.StatusFor(last)
		resp := httperr.Response{Status: status}
		resp.Error.Message = internalErrorMessage
		if status != http.StatusInternalServerError {
			resp.Error.Message = last.Error()
		}
		c.JSON(status, resp)
	}
}

// Recovery turns a panic into a 500 and logs it with the request id and stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				LoggerFrom(c.Request.Context()).Error("recovered from panic",
					"panic", fmt.Sprint(rec),
					"route", c.FullPath(),
					"stack", string(debug.Stack()),
				)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = internalErrorMessage
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
