// Package api serves the order REST endpoints the admin frontend consumes.
// It backs local development and the integration tests.
package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"pehlione.com/admin/internal/backend/store"
)

type Config struct {
	Token       string // required bearer token; empty disables auth
	Logger      *slog.Logger
	Now         func() time.Time
	ServiceName string // span service name; empty disables tracing middleware
}

func NewRouter(repo *store.Repo, cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(requestLog(cfg.Logger))

	h := &Handler{repo: repo, log: cfg.Logger, now: cfg.Now}

	g := r.Group("/orders", bearerAuth(cfg.Token))
	g.GET("", h.List)
	g.GET("/search", h.Search)
	g.GET("/dashboard", h.Dashboard)
	g.GET("/stats", h.Stats)
	g.GET("/:id", h.Get)
	g.PUT("/:id/status", h.UpdateStatus)

	r.NoRoute(func(c *gin.Context) { fail(c, http.StatusNotFound, "route not found") })
	return r
}

func bearerAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// recorded on status history entries
		c.Set(ctxKeyAdmin, adminName(c))
		if token == "" {
			c.Next()
			return
		}
		got := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			fail(c, http.StatusUnauthorized, "invalid or missing token")
			return
		}
		c.Next()
	}
}

const ctxKeyAdmin = "admin_name"

func adminName(c *gin.Context) string {
	if n := strings.TrimSpace(c.GetHeader("X-Admin-Name")); n != "" {
		return n
	}
	return "admin"
}

func requestLog(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.LogAttrs(c.Request.Context(), slog.LevelDebug, "backend_request",
			slog.String("request_id", c.GetHeader("X-Request-ID")),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
