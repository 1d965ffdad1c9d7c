package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/http/flash"
	"pehlione.com/admin/pkg/view"
)

// RedirectWithFlash answers a form post with 303 See Other so the browser
// follows up with a GET.
func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, kind view.FlashKind, msg string) {
	_ = codec.Put(c, view.Flash{Kind: kind, Message: msg})
	c.Redirect(http.StatusSeeOther, location)
}
