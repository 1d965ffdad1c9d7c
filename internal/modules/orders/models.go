package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// FilterAll disables server-side status filtering.
const FilterAll = "all"

// Statuses in lifecycle order.
var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	return st, st.Valid()
}

type ProductRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku,omitempty"`
}

type Item struct {
	Product  ProductRef      `json:"product"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

func (it Item) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// HistoryEntry is one row of the append-only status log.
type HistoryEntry struct {
	Status    Status    `json:"status"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	AdminName string    `json:"admin_name,omitempty"`
}

type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ItemCount       int             `json:"item_count"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []Item          `json:"items,omitempty"`
	ShippingAddress string          `json:"shipping_address,omitempty"`
	StatusHistory   []HistoryEntry  `json:"status_history,omitempty"`
}

// Pagination is always the server's view; the client never recomputes it.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalOrders int64 `json:"totalOrders"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

type Page struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

type DashboardStats struct {
	TotalOrders     int64           `json:"totalOrders"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	PendingOrders   int64           `json:"pendingOrders"`
	DeliveredOrders int64           `json:"deliveredOrders"`
	TodayOrders     int64           `json:"todayOrders"`
	RecentOrders    []Order         `json:"recentOrders"`
}

// OrderStats is served by /orders/stats. It overlaps with DashboardStats but
// the backend contract does not promise they agree, so they stay separate.
type OrderStats struct {
	TotalOrders       int64            `json:"totalOrders"`
	TotalRevenue      decimal.Decimal  `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal  `json:"averageOrderValue"`
	StatusCounts      map[Status]int64 `json:"statusCounts"`
}

type StatusUpdate struct {
	ID        string        `json:"id"`
	Status    Status        `json:"status"`
	UpdatedAt time.Time     `json:"updated_at"`
	Entry     *HistoryEntry `json:"history_entry,omitempty"`
}
