package render

import (
	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/http/middleware"
	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/templates/pages"
)

func ErrorPage(c *gin.Context, status int, msg string) {
	Component(c, status, pages.Error(status, msg, middleware.GetRequestID(c), middleware.GetFlash(c)))
}

// Error answers with the mapped status and public message of err, as JSON
// or as the error page.
func Error(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if middleware.WantsJSON(c) {
		c.JSON(status, middleware.NewErrorResponse(c, err))
		return
	}
	ErrorPage(c, status, apperr.PublicMessage(err))
}
