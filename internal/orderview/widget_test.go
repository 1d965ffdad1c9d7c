package orderview

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pehlione.com/admin/internal/modules/orders"
	"pehlione.com/admin/internal/shared/apperr"
)

func TestWidgetLoadsOnce(t *testing.T) {
	var calls int
	w := NewWidget("stats", func(context.Context) (orders.DashboardStats, error) {
		calls++
		return orders.DashboardStats{TotalOrders: 4, TotalRevenue: decimal.NewFromInt(10)}, nil
	}, nil)
	assert.Equal(t, WidgetLoading, w.State())

	w.Load(context.Background())
	w.Load(context.Background())

	assert.Equal(t, WidgetReady, w.State())
	assert.Equal(t, int64(4), w.Data().TotalOrders)
	assert.Equal(t, 1, calls)
}

func TestWidgetFailureThenRetry(t *testing.T) {
	fail := true
	w := NewWidget("stats", func(context.Context) (orders.DashboardStats, error) {
		if fail {
			return orders.DashboardStats{}, apperr.UnavailableErr(errors.New("refused"))
		}
		return orders.DashboardStats{TotalOrders: 1}, nil
	}, nil)

	w.Load(context.Background())
	require.Equal(t, WidgetFailed, w.State())
	require.NotNil(t, w.Notice())
	assert.True(t, w.Notice().Retryable)
	assert.Zero(t, w.Data().TotalOrders)

	fail = false
	w.Retry(context.Background())
	assert.Equal(t, WidgetReady, w.State())
	assert.Nil(t, w.Notice())
	assert.Equal(t, int64(1), w.Data().TotalOrders)
}

func TestWidgetUnmounted(t *testing.T) {
	var w *Widget[int]
	w = NewWidget("n", func(context.Context) (int, error) {
		w.Unmount()
		return 7, nil
	}, nil)

	w.Load(context.Background())

	assert.Equal(t, WidgetLoading, w.State())
	assert.Zero(t, w.Data())
}

func TestLoadAllRunsConcurrently(t *testing.T) {
	var inflight, peak atomic.Int32
	slow := func(context.Context) (int, error) {
		n := inflight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		inflight.Add(-1)
		return 1, nil
	}
	a := NewWidget("a", slow, nil)
	b := NewWidget("b", func(ctx context.Context) (int, error) {
		v, _ := slow(ctx)
		return v, errors.New("b failed")
	}, nil)

	require.NoError(t, LoadAll(context.Background(), a, b), "a failed widget is not a LoadAll error")

	assert.Equal(t, WidgetReady, a.State())
	assert.Equal(t, WidgetFailed, b.State())
	assert.Equal(t, int32(2), peak.Load())
}

func TestLoadAllReportsEndedContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a := NewWidget("a", func(context.Context) (int, error) {
		cancel()
		return 1, nil
	}, nil)
	b := NewWidget("b", func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}, nil)

	err := LoadAll(ctx, a, b)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, WidgetLoading, a.State(), "late result is discarded")
	assert.Equal(t, WidgetLoading, b.State())
}
