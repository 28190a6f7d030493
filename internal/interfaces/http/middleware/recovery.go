package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/logging"
	"github.com/richlegrande-dot/care2connect-intake/pkg/errors"
)

// Recovery converts a handler panic into a 500 with the standard error
// envelope.  The engine itself never panics outward, so anything caught here
// is a bug in the interface layer.
func Recovery(logger logging.Logger) gin.HandlerFunc {
	logger = logger.Named("http")
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("handler panic recovered",
					logging.Any("panic", r),
					logging.String("path", c.Request.URL.Path),
					logging.String("request_id", GetRequestID(c)))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{
						"code":    errors.ErrCodeInternal,
						"message": "internal server error",
					},
					"request_id": GetRequestID(c),
				})
			}
		}()
		c.Next()
	}
}
