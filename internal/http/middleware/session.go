package middleware

import (
	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/apiclient"
	"pehlione.com/admin/internal/http/session"
)

const ctxKeyAdmin = "admin"

// Admin is the signed-in operator.
type Admin struct {
	Name string
	// Service is set when no one signed in and the configured service
	// token is used instead.
	Service bool
}

type SessionCfg struct {
	Codec *session.Codec
	// ServiceAdmin, when set, lets requests without a session through under
	// this name. The API client then falls back to its configured token.
	ServiceAdmin string
}

// Session loads the admin from the signed cookie and hands the API token to
// backend calls made with the request context.
func Session(cfg SessionCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if s, ok := cfg.Codec.Get(c); ok {
			c.Set(ctxKeyAdmin, Admin{Name: s.Name})
			ctx = apiclient.WithToken(ctx, s.Token)
			ctx = apiclient.WithAdminName(ctx, s.Name)
		} else if cfg.ServiceAdmin != "" {
			c.Set(ctxKeyAdmin, Admin{Name: cfg.ServiceAdmin, Service: true})
			ctx = apiclient.WithAdminName(ctx, cfg.ServiceAdmin)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func CurrentAdmin(c *gin.Context) (Admin, bool) {
	v, ok := c.Get(ctxKeyAdmin)
	if !ok {
		return Admin{}, false
	}
	a, ok := v.(Admin)
	return a, ok && a.Name != ""
}
