package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

// Recovery returns middleware that turns panics into INTERNAL responses and
// logs the stack trace.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				ctx := c.Request.Context()
				logging.FromContext(ctx).ErrorContext(ctx, "panic recovered",
					slog.Any("error", r),
					slog.String("stack", string(debug.Stack())),
					slog.String("path", c.Request.URL.Path),
					slog.String("method", c.Request.Method),
				)

				if c.Writer.Written() {
					c.Abort()
					return
				}

				dto.AbortWithCode(c, dto.ErrorCodeInternal, "an internal error occurred")
			}
		}()

		c.Next()
	}
}
