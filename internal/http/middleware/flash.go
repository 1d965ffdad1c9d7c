package middleware

import (
	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/http/flash"
	"pehlione.com/admin/pkg/view"
)

const CtxKeyFlash = "flash"

// Flash moves the pending flash message, if any, into the request context.
func Flash(codec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if f := codec.Pop(c); f != nil {
			c.Set(CtxKeyFlash, f)
		}
		c.Next()
	}
}

func GetFlash(c *gin.Context) *view.Flash {
	f, _ := c.Value(CtxKeyFlash).(*view.Flash)
	return f
}
