package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/apiclient"
	"pehlione.com/admin/internal/http/flash"
	"pehlione.com/admin/internal/http/middleware"
	"pehlione.com/admin/internal/http/render"
	"pehlione.com/admin/internal/http/session"
	"pehlione.com/admin/internal/http/validation"
	"pehlione.com/admin/internal/modules/orders"
	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/pkg/view"
	"pehlione.com/admin/templates/pages"
)

// TokenVerifier is any authenticated backend call cheap enough to check a
// token with.
type TokenVerifier interface {
	GetOrderStats(ctx context.Context) (orders.OrderStats, error)
}

type SessionHandler struct {
	Flash   *flash.Codec
	Session *session.Codec
	Verify  TokenVerifier
}

func NewSessionHandler(f *flash.Codec, s *session.Codec, v TokenVerifier) *SessionHandler {
	return &SessionHandler{Flash: f, Session: s, Verify: v}
}

type loginInput struct {
	Name     string `form:"name" binding:"required,max=64"`
	Token    string `form:"token" binding:"required,max=4096"`
	ReturnTo string `form:"return_to"`
}

func (h *SessionHandler) LoginGet(c *gin.Context) {
	render.Component(c, http.StatusOK, pages.Login(
		middleware.GetFlash(c),
		view.LoginForm{ReturnTo: normalizeReturnTo(c.Query("return_to"))},
		nil,
		"",
	))
}

func (h *SessionHandler) LoginPost(c *gin.Context) {
	var in loginInput
	if fe := validation.Bind(c, &in); fe != nil {
		form := view.LoginForm{Name: in.Name, ReturnTo: normalizeReturnTo(in.ReturnTo)}
		render.Component(c, http.StatusBadRequest, pages.Login(
			middleware.GetFlash(c), form, fe, ""))
		return
	}
	name := strings.TrimSpace(in.Name)
	form := view.LoginForm{Name: name, ReturnTo: normalizeReturnTo(in.ReturnTo)}

	ctx := apiclient.WithToken(c.Request.Context(), strings.TrimSpace(in.Token))
	if _, err := h.Verify.GetOrderStats(ctx); err != nil {
		status, msg := loginFailure(err)
		render.Component(c, status, pages.Login(middleware.GetFlash(c), form, nil, msg))
		return
	}

	if err := h.Session.Set(c, name, strings.TrimSpace(in.Token)); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	dest := "/admin"
	if form.ReturnTo != "" {
		dest = form.ReturnTo
	}
	render.RedirectWithFlash(c, h.Flash, dest, view.FlashSuccess, "Signed in as "+name+".")
}

func (h *SessionHandler) Logout(c *gin.Context) {
	h.Session.Clear(c)
	render.RedirectWithFlash(c, h.Flash, "/admin/login", view.FlashInfo, "Signed out.")
}

func loginFailure(err error) (int, string) {
	switch apperr.KindOf(err) {
	case apperr.Unauthorized, apperr.Forbidden:
		return http.StatusUnauthorized, "The API token was not accepted."
	case apperr.Unavailable:
		return http.StatusBadGateway, "The order service is unreachable. Try again shortly."
	default:
		return apperr.HTTPStatus(err), apperr.PublicMessage(err)
	}
}

// normalizeReturnTo only accepts local absolute paths.
func normalizeReturnTo(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s[0] != '/' {
		return ""
	}
	if strings.HasPrefix(s, "//") || strings.HasPrefix(s, "/\\") || strings.Contains(s, "://") {
		return ""
	}
	return s
}
