package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/backend/store"
	"pehlione.com/admin/internal/modules/orders"
)

type Handler struct {
	repo *store.Repo
	log  *slog.Logger
	now  func() time.Time
}

func (h *Handler) List(c *gin.Context) {
	h.page(c, store.ListParams{Status: strings.TrimSpace(c.Query("status"))})
}

// Search with an empty term is the unfiltered list.
func (h *Handler) Search(c *gin.Context) {
	h.page(c, store.ListParams{Q: c.Query("search")})
}

func (h *Handler) page(c *gin.Context, in store.ListParams) {
	if in.Status == orders.FilterAll {
		in.Status = ""
	}
	if in.Status != "" && !orders.Status(in.Status).Valid() {
		fail(c, http.StatusBadRequest, "unknown status filter")
		return
	}
	in.Page = queryInt(c, "page", 1)
	in.PageSize = queryInt(c, "limit", store.DefaultPageSize)

	res, err := h.repo.List(c.Request.Context(), in)
	if err != nil {
		h.internal(c, err)
		return
	}

	out := orders.Page{
		Orders: make([]orders.Order, 0, len(res.Items)),
		Pagination: orders.Pagination{
			CurrentPage: res.Page,
			TotalPages:  res.TotalPages,
			TotalOrders: res.Total,
			HasNextPage: res.Page < res.TotalPages,
			HasPrevPage: res.Page > 1,
		},
	}
	for _, o := range res.Items {
		out.Orders = append(out.Orders, o.Wire())
	}
	ok(c, out)
}

func (h *Handler) Get(c *gin.Context) {
	o, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		h.internal(c, err)
		return
	}
	ok(c, o.Wire())
}

type statusRequest struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid JSON body")
		return
	}
	to, valid := orders.ParseStatus(strings.TrimSpace(req.Status))
	if !valid {
		fail(c, http.StatusBadRequest, "unknown status")
		return
	}

	res, err := h.repo.Transition(c.Request.Context(), store.TransitionInput{
		OrderID:   c.Param("id"),
		To:        to,
		Message:   req.Message,
		AdminName: c.GetString(ctxKeyAdmin),
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		fail(c, http.StatusNotFound, "order not found")
		return
	case errors.Is(err, store.ErrInvalidTransition):
		fail(c, http.StatusConflict, "cannot change status to "+string(to))
		return
	case err != nil:
		h.internal(c, err)
		return
	}

	entry := res.Event.Wire()
	ok(c, orders.StatusUpdate{
		ID:        res.Order.ID,
		Status:    orders.Status(res.Order.Status),
		UpdatedAt: res.Order.UpdatedAt,
		Entry:     &entry,
	})
}

func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.repo.Dashboard(c.Request.Context(), h.now())
	if err != nil {
		h.internal(c, err)
		return
	}
	ok(c, d)
}

func (h *Handler) Stats(c *gin.Context) {
	s, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		h.internal(c, err)
		return
	}
	ok(c, s)
}

func (h *Handler) internal(c *gin.Context, err error) {
	h.log.LogAttrs(c.Request.Context(), slog.LevelError, "backend_failed",
		slog.String("path", c.Request.URL.Path),
		slog.Any("err", err),
	)
	fail(c, http.StatusInternalServerError, "internal error")
}

func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil || n < 1 {
		return def
	}
	return n
}
