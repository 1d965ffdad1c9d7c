// Package http wires the admin web surface: middleware, session handling and
// the order screens.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"pehlione.com/admin/internal/http/flash"
	"pehlione.com/admin/internal/http/handlers"
	"pehlione.com/admin/internal/http/handlers/admin"
	"pehlione.com/admin/internal/http/middleware"
	"pehlione.com/admin/internal/http/session"
	"pehlione.com/admin/internal/orderview"
	"pehlione.com/admin/internal/shared/apperr"
)

// OrderAPI is everything the admin screens need from the order backend.
type OrderAPI interface {
	orderview.OrderService
	orderview.DashboardService
}

type Deps struct {
	Logger  *slog.Logger
	Orders  OrderAPI
	Flash   *flash.Codec
	Session *session.Codec

	// ServiceAdmin lets requests without a session through under this name,
	// using the client's fallback token. Empty requires signing in.
	ServiceAdmin string
	PageSize     int
	// ServiceName enables the otelgin middleware when set.
	ServiceName string
}

func NewRouter(d Deps) *gin.Engine {
	l := d.Logger
	if l == nil {
		l = slog.Default()
	}

	r := gin.New()
	r.RedirectTrailingSlash = true

	if d.ServiceName != "" {
		r.Use(otelgin.Middleware(d.ServiceName))
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(l, "/healthz"))
	r.Use(middleware.ErrorHandler(l))
	r.Use(middleware.Recovery(l))
	r.Use(middleware.Flash(d.Flash))
	r.Use(middleware.Session(middleware.SessionCfg{Codec: d.Session, ServiceAdmin: d.ServiceAdmin}))

	r.GET("/healthz", handlers.Health)
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admin") })

	sess := handlers.NewSessionHandler(d.Flash, d.Session, d.Orders)
	r.GET("/admin/login", sess.LoginGet)
	r.POST("/admin/login", sess.LoginPost)
	r.POST("/admin/logout", sess.Logout)

	dash := admin.NewDashboardHandler(d.Orders, l)
	ord := admin.NewOrdersHandler(d.Orders, d.Flash, d.PageSize, l)

	g := r.Group("/admin", middleware.RequireAdmin(d.Flash))
	g.GET("", dash.Show)
	g.GET("/orders", ord.List)
	g.POST("/orders/:id/status", ord.UpdateStatus)

	r.NoRoute(func(c *gin.Context) {
		middleware.Fail(c, errNotFound)
	})
	return r
}

var errNotFound = apperr.NotFoundErr("Page not found.")
