package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"pehlione.com/admin/internal/modules/orders"
)

const recentOrdersLimit = 5

type statRow struct {
	Status      string
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}

// Aggregation runs in Go over a narrow projection so the result does not
// depend on each driver's date and numeric functions.
func (r *Repo) statRows(ctx context.Context) ([]statRow, error) {
	var rows []statRow
	err := r.db.WithContext(ctx).
		Model(&Order{}).
		Select("status", "total_amount", "created_at").
		Find(&rows).Error
	return rows, err
}

// revenue excludes cancelled orders
func countsAndRevenue(rows []statRow) (map[orders.Status]int64, decimal.Decimal) {
	counts := make(map[orders.Status]int64, len(orders.Statuses))
	revenue := decimal.Zero
	for _, row := range rows {
		counts[orders.Status(row.Status)]++
		if row.Status != string(orders.StatusCancelled) {
			revenue = revenue.Add(row.TotalAmount)
		}
	}
	return counts, revenue.Round(2)
}

func (r *Repo) Dashboard(ctx context.Context, now time.Time) (orders.DashboardStats, error) {
	rows, err := r.statRows(ctx)
	if err != nil {
		return orders.DashboardStats{}, err
	}
	counts, revenue := countsAndRevenue(rows)

	y, m, d := now.UTC().Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	var today int64
	for _, row := range rows {
		if !row.CreatedAt.Before(startOfDay) {
			today++
		}
	}

	var recent []Order
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(recentOrdersLimit).
		Find(&recent).Error; err != nil {
		return orders.DashboardStats{}, err
	}

	out := orders.DashboardStats{
		TotalOrders:     int64(len(rows)),
		TotalRevenue:    revenue,
		PendingOrders:   counts[orders.StatusPending],
		DeliveredOrders: counts[orders.StatusDelivered],
		TodayOrders:     today,
		RecentOrders:    make([]orders.Order, 0, len(recent)),
	}
	for _, o := range recent {
		out.RecentOrders = append(out.RecentOrders, o.Wire())
	}
	return out, nil
}

func (r *Repo) Stats(ctx context.Context) (orders.OrderStats, error) {
	rows, err := r.statRows(ctx)
	if err != nil {
		return orders.OrderStats{}, err
	}
	counts, revenue := countsAndRevenue(rows)

	billable := int64(len(rows)) - counts[orders.StatusCancelled]
	avg := decimal.Zero
	if billable > 0 {
		avg = revenue.Div(decimal.NewFromInt(billable)).Round(2)
	}

	return orders.OrderStats{
		TotalOrders:       int64(len(rows)),
		TotalRevenue:      revenue,
		AverageOrderValue: avg,
		StatusCounts:      counts,
	}, nil
}
