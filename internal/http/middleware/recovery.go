package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/shared/apperr"
)

// Recovery turns a handler panic into a 500 rendered by ErrorHandler. The
// stack goes to the log only.
func Recovery(l *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		l.LogAttrs(c.Request.Context(), slog.LevelError, "panic_recovered",
			slog.String("request_id", GetRequestID(c)),
			slog.String("route", c.FullPath()),
			slog.Any("panic", recovered),
			slog.String("stack", string(debug.Stack())),
		)
		Fail(c, apperr.Wrap(fmt.Errorf("panic in %s %s: %v", c.Request.Method, c.FullPath(), recovered)))
	})
}
