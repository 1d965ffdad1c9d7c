package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/http/flash"
	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/pkg/view"
)

// RequireAdmin lets signed-in admins through.
// - SSR: flash + redirect to the login page with return_to
// - JSON: 401
func RequireAdmin(flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentAdmin(c); ok {
			c.Next()
			return
		}

		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				NewErrorResponse(c, apperr.UnauthorizedErr("Authentication required.")))
			return
		}

		returnTo := c.Request.URL.RequestURI()
		_ = flashCodec.Put(c, view.Flash{
			Kind:    view.FlashWarning,
			Message: "Sign in to use the admin panel.",
		})
		c.Redirect(http.StatusFound, "/admin/login?return_to="+url.QueryEscape(returnTo))
		c.Abort()
	}
}
