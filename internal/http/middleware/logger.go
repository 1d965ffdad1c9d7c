package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one http_request record per request. Requests to quiet paths
// (the health check) are logged only when they fail.
func Logger(l *slog.Logger, quiet ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(quiet))
	for _, p := range quiet {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if _, ok := skip[c.Request.URL.Path]; ok && status < 400 {
			return
		}

		attrs := []slog.Attr{
			slog.String("request_id", GetRequestID(c)),
			slog.Group("http",
				slog.String("method", c.Request.Method),
				slog.String("route", c.FullPath()),
				slog.String("target", c.Request.URL.RequestURI()),
				slog.Int("status", status),
				slog.Int("bytes", c.Writer.Size()),
				slog.String("client_ip", c.ClientIP()),
			),
			slog.Duration("latency", time.Since(start)),
		}
		if a, ok := CurrentAdmin(c); ok {
			attrs = append(attrs, slog.String("admin", a.Name))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		l.LogAttrs(c.Request.Context(), statusLevel(status), "http_request", attrs...)
	}
}

func statusLevel(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
