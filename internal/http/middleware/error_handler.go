package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/templates/pages"
)

// WantsJSON reports whether the client asked for JSON, either with the
// Accept header or with ?format=json.
func WantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return c.Query("format") == "json"
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Kind      apperr.Kind       `json:"kind,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

func NewErrorResponse(c *gin.Context, err error) ErrorResponse {
	out := ErrorResponse{
		Error:     apperr.PublicMessage(err),
		Kind:      apperr.KindOf(err),
		RequestID: GetRequestID(c),
	}
	if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
		out.Fields = ae.Fields
	}
	return out
}

func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler renders the last error of a request that wrote nothing.
func ErrorHandler(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperr.HTTPStatus(err)
		body := NewErrorResponse(c, err)

		l.LogAttrs(c.Request.Context(), failureLevel(err, status), "request_failed",
			slog.String("request_id", body.RequestID),
			slog.Int("status", status),
			slog.String("kind", string(body.Kind)),
			slog.Any("err", err),
		)

		c.Abort()
		if WantsJSON(c) {
			c.JSON(status, body)
			return
		}
		c.Status(status)
		c.Header("Content-Type", "text/html; charset=utf-8")
		if rerr := pages.Error(status, body.Error, body.RequestID, GetFlash(c)).Render(c.Request.Context(), c.Writer); rerr != nil {
			l.LogAttrs(c.Request.Context(), slog.LevelError, "error_page_failed", slog.Any("err", rerr))
		}
	}
}

// Client mistakes and an unreachable backend are warnings; anything else
// that ends in a 5xx is an error.
func failureLevel(err error, status int) slog.Level {
	if status < http.StatusInternalServerError || apperr.KindOf(err) == apperr.Unavailable {
		return slog.LevelWarn
	}
	return slog.LevelError
}
