// Package orderview holds the view state of the admin order screens. A view
// lives for one render cycle: it is built, driven by user actions, rendered
// and dropped. Nothing is cached between views.
package orderview

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	"pehlione.com/admin/internal/modules/orders"
	"pehlione.com/admin/internal/shared/apperr"
)

const DefaultPageSize = 10

type OrderService interface {
	ListOrders(ctx context.Context, in orders.ListParams) (orders.Page, error)
	SearchOrders(ctx context.Context, term string, page, pageSize int) (orders.Page, error)
	GetOrder(ctx context.Context, id string) (orders.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status orders.Status, message string) (orders.StatusUpdate, error)
}

// Query is the dependency list of the list effect.
type Query struct {
	Page   int
	Status string
	Term   string
}

type State struct {
	Loading      bool
	Orders       []orders.Order
	Pagination   orders.Pagination
	Page         int
	StatusFilter string
	SearchTerm   string

	Selected      *orders.Order
	ViewingDetail bool
	EditingStatus bool

	Notice       *Notice // list fetch
	DetailNotice *Notice // order load for a dialog
	StatusError  *Notice // inside the status dialog
	LastUpdate   *orders.StatusUpdate
}

type ListView struct {
	svc      OrderService
	pageSize int
	log      *slog.Logger

	state   State
	fetched *Query // deps of the last successful list fetch
	stale   bool
	retry   func(context.Context)

	detailRetry func(context.Context)

	mounted   bool
	unmounted atomic.Bool
}

type Option func(*ListView)

func WithPageSize(n int) Option {
	return func(v *ListView) {
		if n > 0 {
			v.pageSize = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(v *ListView) {
		if l != nil {
			v.log = l
		}
	}
}

func NewListView(svc OrderService, opts ...Option) *ListView {
	v := &ListView{
		svc:      svc,
		pageSize: DefaultPageSize,
		log:      slog.Default(),
		state:    State{Page: 1, StatusFilter: orders.FilterAll},
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// State returns a snapshot for rendering.
func (v *ListView) State() State { return v.state }

func (v *ListView) PageSize() int { return v.pageSize }

func (v *ListView) Query() Query {
	return Query{Page: v.state.Page, Status: v.state.StatusFilter, Term: v.state.SearchTerm}
}

// IsEmpty is the "no orders" state, which is not an error.
func (v *ListView) IsEmpty() bool {
	return v.fetched != nil && !v.state.Loading && v.state.Notice == nil && len(v.state.Orders) == 0
}

// Mount performs the initial fetch. A view that was never mounted has no
// list to keep fresh.
func (v *ListView) Mount(ctx context.Context) {
	v.mounted = true
	v.Sync(ctx)
}

// Unmount drops every fetch that completes afterwards.
func (v *ListView) Unmount() { v.unmounted.Store(true) }

// Sync fetches the list when the dependencies changed since the last
// successful fetch, or when an update invalidated it. It reports whether a
// request was issued.
func (v *ListView) Sync(ctx context.Context) bool {
	q := v.Query()
	if !v.stale && v.fetched != nil && *v.fetched == q {
		return false
	}
	v.fetchList(ctx, q)
	return true
}

func (v *ListView) fetchList(ctx context.Context, q Query) {
	if v.unmounted.Load() {
		return
	}
	v.state.Loading = true

	var (
		page orders.Page
		err  error
	)
	if q.Term != "" {
		page, err = v.svc.SearchOrders(ctx, q.Term, q.Page, v.pageSize)
	} else {
		page, err = v.svc.ListOrders(ctx, orders.ListParams{Page: q.Page, PageSize: v.pageSize, Status: q.Status})
	}
	v.state.Loading = false
	if v.discard(ctx) {
		return
	}

	if err != nil {
		logFailure(ctx, v.log, "list_orders", err)
		v.state.Notice = noticeFrom(err, true)
		v.retry = func(ctx context.Context) { v.fetchList(ctx, v.Query()) }
		return
	}

	v.state.Orders = page.Orders
	v.state.Pagination = page.Pagination
	if cp := page.Pagination.CurrentPage; cp > 0 {
		v.state.Page = cp
	}
	done := v.Query()
	v.fetched = &done
	v.stale = false
	v.state.Notice = nil
	v.retry = nil
}

func (v *ListView) discard(ctx context.Context) bool {
	return v.unmounted.Load() || ctx.Err() != nil
}

func (v *ListView) SetStatusFilter(status string) {
	status = normalizeFilter(status)
	if status == v.state.StatusFilter && v.state.SearchTerm == "" {
		return
	}
	v.state.StatusFilter = status
	v.state.SearchTerm = ""
	v.state.Page = 1
}

// Search always issues a request on a mounted view, even for the same term.
// Before Mount it only records the term. An empty term returns to the plain
// list.
func (v *ListView) Search(ctx context.Context, term string) {
	v.state.SearchTerm = strings.TrimSpace(term)
	v.state.Page = 1
	v.stale = true
	if v.mounted {
		v.Sync(ctx)
	}
}

// GoToPage changes the page only when it lies inside the known range.
func (v *ListView) GoToPage(p int) bool {
	pg := v.state.Pagination
	if p < 1 || p == v.state.Page {
		return false
	}
	if pg.TotalPages > 0 && p > pg.TotalPages {
		return false
	}
	v.state.Page = p
	return true
}

func (v *ListView) NextPage() bool {
	if !v.state.Pagination.HasNextPage {
		return false
	}
	return v.GoToPage(v.state.Page + 1)
}

func (v *ListView) PrevPage() bool {
	if !v.state.Pagination.HasPrevPage {
		return false
	}
	return v.GoToPage(v.state.Page - 1)
}

// ViewOrder loads the full order and opens the detail dialog.
func (v *ListView) ViewOrder(ctx context.Context, id string) bool {
	o, ok := v.loadOrder(ctx, id, func(ctx context.Context) { v.ViewOrder(ctx, id) })
	if !ok {
		return false
	}
	v.state.Selected = &o
	v.state.ViewingDetail = true
	return true
}

// OpenStatusEditor opens the status dialog, loading the order unless it is
// already selected.
func (v *ListView) OpenStatusEditor(ctx context.Context, id string) bool {
	if v.state.Selected == nil || v.state.Selected.ID != id {
		o, ok := v.loadOrder(ctx, id, func(ctx context.Context) { v.OpenStatusEditor(ctx, id) })
		if !ok {
			return false
		}
		v.state.Selected = &o
	}
	v.state.EditingStatus = true
	v.state.StatusError = nil
	return true
}

func (v *ListView) loadOrder(ctx context.Context, id string, again func(context.Context)) (orders.Order, bool) {
	if v.unmounted.Load() {
		return orders.Order{}, false
	}
	o, err := v.svc.GetOrder(ctx, id)
	if v.discard(ctx) {
		return orders.Order{}, false
	}
	if err != nil {
		logFailure(ctx, v.log, "get_order", err)
		v.state.DetailNotice = noticeFrom(err, true)
		v.detailRetry = again
		return orders.Order{}, false
	}
	v.state.DetailNotice = nil
	v.detailRetry = nil
	return o, true
}

func (v *ListView) CloseDetail() {
	v.state.ViewingDetail = false
	if !v.state.EditingStatus {
		v.state.Selected = nil
	}
}

func (v *ListView) CloseStatusEditor() {
	v.state.EditingStatus = false
	v.state.StatusError = nil
	if !v.state.ViewingDetail {
		v.state.Selected = nil
	}
}

// SubmitStatus sends the requested status. On success both dialogs close and
// a mounted list is fetched again so the table shows the server's state. On
// failure the dialog stays open with the error and the list is left alone.
func (v *ListView) SubmitStatus(ctx context.Context, status orders.Status, message string) bool {
	if !v.state.EditingStatus || v.state.Selected == nil {
		v.state.StatusError = &Notice{Message: "No order selected.", Kind: apperr.Invalid}
		return false
	}
	if !status.Valid() {
		v.state.StatusError = &Notice{Message: "Choose a valid status.", Kind: apperr.Invalid}
		return false
	}
	if v.unmounted.Load() {
		return false
	}

	upd, err := v.svc.UpdateOrderStatus(ctx, v.state.Selected.ID, status, strings.TrimSpace(message))
	if v.discard(ctx) {
		return false
	}
	if err != nil {
		logFailure(ctx, v.log, "update_order_status", err)
		v.state.StatusError = noticeFrom(err, false)
		return false
	}

	v.state.LastUpdate = &upd
	v.state.EditingStatus = false
	v.state.ViewingDetail = false
	v.state.Selected = nil
	v.state.StatusError = nil
	v.stale = true
	if v.mounted {
		v.Sync(ctx)
	}
	return true
}

// Retry repeats the failed list fetch and then the failed order load. It
// reports whether anything was retried.
func (v *ListView) Retry(ctx context.Context) bool {
	list, detail := v.retry, v.detailRetry
	v.retry, v.detailRetry = nil, nil
	if list != nil {
		list(ctx)
	}
	if detail != nil {
		detail(ctx)
	}
	return list != nil || detail != nil
}

func normalizeFilter(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return orders.FilterAll
	}
	if s != orders.FilterAll {
		if _, ok := orders.ParseStatus(s); !ok {
			return orders.FilterAll
		}
	}
	return s
}
