// Package middleware holds the cross-cutting gin middleware: the error
// boundary, request logging, CORS and rate limiting.
package middleware

import (
	"net/http"

	"tira/backend/internal/apperrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler is the single place errors become HTTP responses. Handlers
// attach errors with c.Error; after the chain runs, the last one is
// translated to a {status, message} pair and written as {"error": msg}.
// Server-side failures are logged with the original error.
func ErrorHandler(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, message := apperrors.Translate(err)
		if status >= http.StatusInternalServerError {
			log.Errorw("request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", status,
				"error", err,
			)
		}
		c.JSON(status, gin.H{"error": message})
	}
}
