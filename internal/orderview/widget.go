package orderview

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"pehlione.com/admin/internal/modules/orders"
)

type WidgetState int

const (
	WidgetLoading WidgetState = iota // skeleton
	WidgetReady
	WidgetFailed
)

func (s WidgetState) String() string {
	switch s {
	case WidgetReady:
		return "ready"
	case WidgetFailed:
		return "failed"
	default:
		return "loading"
	}
}

// Widget fetches one resource once. It never polls; a failed load stays
// failed until Retry.
type Widget[T any] struct {
	op    string
	fetch func(context.Context) (T, error)
	log   *slog.Logger

	state  WidgetState
	data   T
	notice *Notice

	unmounted atomic.Bool
}

func NewWidget[T any](op string, fetch func(context.Context) (T, error), l *slog.Logger) *Widget[T] {
	if l == nil {
		l = slog.Default()
	}
	return &Widget[T]{op: op, fetch: fetch, log: l}
}

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (orders.DashboardStats, error)
	GetOrderStats(ctx context.Context) (orders.OrderStats, error)
}

// NewStatsWidget is the dashboard summary cards plus recent orders.
func NewStatsWidget(svc DashboardService, l *slog.Logger) *Widget[orders.DashboardStats] {
	return NewWidget("dashboard_stats", svc.GetDashboardStats, l)
}

// NewOrderStatsWidget shows the /orders/stats breakdown.
func NewOrderStatsWidget(svc DashboardService, l *slog.Logger) *Widget[orders.OrderStats] {
	return NewWidget("order_stats", svc.GetOrderStats, l)
}

func (w *Widget[T]) State() WidgetState { return w.state }
func (w *Widget[T]) Data() T            { return w.data }
func (w *Widget[T]) Notice() *Notice    { return w.notice }

// Load is a no-op once the widget is ready.
func (w *Widget[T]) Load(ctx context.Context) {
	if w.state == WidgetReady {
		return
	}
	w.load(ctx)
}

func (w *Widget[T]) Retry(ctx context.Context) {
	if w.state != WidgetFailed {
		return
	}
	w.load(ctx)
}

func (w *Widget[T]) Unmount() { w.unmounted.Store(true) }

func (w *Widget[T]) load(ctx context.Context) {
	if w.unmounted.Load() {
		return
	}
	w.state = WidgetLoading
	data, err := w.fetch(ctx)
	if w.unmounted.Load() || ctx.Err() != nil {
		return
	}
	if err != nil {
		logFailure(ctx, w.log, w.op, err)
		w.state = WidgetFailed
		w.notice = noticeFrom(err, true)
		return
	}
	w.data = data
	w.notice = nil
	w.state = WidgetReady
}

type Loader interface {
	Load(ctx context.Context)
}

// LoadAll runs independent loads concurrently and returns when all are done.
// Each loader records its own failure, so one failing does not cancel the
// rest. The error is the context's, when it ended before the loads did.
func LoadAll(ctx context.Context, loaders ...Loader) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, l := range loaders {
		g.Go(func() error {
			l.Load(gctx)
			return gctx.Err()
		})
	}
	return g.Wait()
}
