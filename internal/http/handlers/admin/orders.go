package admin

import (
	"cmp"
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/http/flash"
	"pehlione.com/admin/internal/http/middleware"
	"pehlione.com/admin/internal/http/render"
	"pehlione.com/admin/internal/http/validation"
	"pehlione.com/admin/internal/modules/orders"
	"pehlione.com/admin/internal/orderview"
	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/pkg/view"
	"pehlione.com/admin/templates/pages"
)

type OrdersHandler struct {
	Svc      orderview.OrderService
	Flash    *flash.Codec
	PageSize int
	Log      *slog.Logger
}

func NewOrdersHandler(svc orderview.OrderService, f *flash.Codec, pageSize int, l *slog.Logger) *OrdersHandler {
	if l == nil {
		l = slog.Default()
	}
	return &OrdersHandler{Svc: svc, Flash: f, PageSize: pageSize, Log: l}
}

// openView replays a list position from the URL through the view's own
// actions. A mounted view fetches the first page, then moves to the requested
// page clamped to the page count the server reported, so an out of range
// page is never sent upstream.
func (h *OrdersHandler) openView(ctx context.Context, q orderview.Query, mount bool) *orderview.ListView {
	v := orderview.NewListView(h.Svc,
		orderview.WithPageSize(h.PageSize),
		orderview.WithLogger(h.Log),
	)
	v.SetStatusFilter(q.Status)
	if term := strings.TrimSpace(q.Term); term != "" {
		v.Search(ctx, term)
	}
	if !mount {
		v.GoToPage(q.Page)
		return v
	}

	v.Mount(ctx)
	st := v.State()
	if q.Page > 1 && st.Notice == nil && v.GoToPage(min(q.Page, st.Pagination.TotalPages)) {
		v.Sync(ctx)
	}
	return v
}

// List renders the table. ?view=<id> opens the detail dialog and ?edit=<id>
// the status dialog on top of it.
func (h *OrdersHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	v := h.openView(ctx, orderview.Query{
		Page:   parseInt(c.Query("page"), 1),
		Status: c.Query("status"),
		Term:   c.Query("q"),
	}, true)
	defer v.Unmount()

	if id := strings.TrimSpace(c.Query("view")); id != "" {
		v.ViewOrder(ctx, id)
	}
	if id := strings.TrimSpace(c.Query("edit")); id != "" {
		v.OpenStatusEditor(ctx, id)
	}

	vm := listPage(v, c.Request.URL.RequestURI())
	if middleware.WantsJSON(c) {
		status := http.StatusOK
		st := v.State()
		if n := cmp.Or(st.Notice, st.DetailNotice); n != nil {
			status = apperr.HTTPStatus(n.Err())
		}
		c.JSON(status, vm)
		return
	}

	admin, _ := middleware.CurrentAdmin(c)
	render.Component(c, http.StatusOK, pages.AdminOrdersList(middleware.GetFlash(c), admin.Name, vm))
}

type statusInput struct {
	Status       string `form:"status" binding:"required,oneof=pending confirmed processing shipped delivered cancelled"`
	Message      string `form:"message" binding:"max=500"`
	Page         int    `form:"page"`
	StatusFilter string `form:"status_filter"`
	Q            string `form:"q"`
}

// UpdateStatus applies a status change. On success it redirects back to the
// list position the dialog was opened from; on failure only the dialog is
// rendered again, with the error, and the list is not fetched.
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var in statusInput
	fieldErrs := validation.Bind(c, &in)

	v := h.openView(ctx, orderview.Query{Page: in.Page, Status: in.StatusFilter, Term: in.Q}, false)
	defer v.Unmount()

	if !v.OpenStatusEditor(ctx, id) {
		if n := v.State().DetailNotice; n != nil {
			render.Error(c, n.Err())
			return
		}
		middleware.Fail(c, apperr.UnavailableErr(ctx.Err()))
		return
	}

	if fieldErrs != nil {
		ed := statusEditor(v.State(), in.Message)
		ed.FieldErrors = fieldErrs
		h.dialog(c, http.StatusBadRequest, ed)
		return
	}

	st, _ := orders.ParseStatus(in.Status)
	if !v.SubmitStatus(ctx, st, in.Message) {
		state := v.State()
		ed := statusEditor(state, in.Message)
		selectStatus(ed.Options, in.Status)
		code := http.StatusBadRequest
		if state.StatusError != nil {
			code = apperr.HTTPStatus(state.StatusError.Err())
		}
		h.dialog(c, code, ed)
		return
	}

	upd := v.State().LastUpdate
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, upd)
		return
	}
	q := v.Query()
	render.RedirectWithFlash(c, h.Flash, view.ListURL(q.Page, q.Status, q.Term), view.FlashSuccess,
		"Order status changed to "+strings.ToLower(statusLabel(string(upd.Status)))+".")
}

func (h *OrdersHandler) dialog(c *gin.Context, code int, ed *view.StatusEditor) {
	if middleware.WantsJSON(c) {
		c.JSON(code, ed)
		return
	}
	admin, _ := middleware.CurrentAdmin(c)
	render.Component(c, code, pages.StatusDialog(middleware.GetFlash(c), admin.Name, *ed))
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}
