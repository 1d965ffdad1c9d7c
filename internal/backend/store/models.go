package store

import (
	"time"

	"github.com/shopspring/decimal"

	"pehlione.com/admin/internal/modules/orders"
)

type Order struct {
	ID              string          `gorm:"primaryKey;type:varchar(36)"`
	OrderNumber     string          `gorm:"type:varchar(40);not null;uniqueIndex:ux_orders_number"`
	CustomerName    string          `gorm:"type:varchar(120);not null"`
	CustomerEmail   string          `gorm:"type:varchar(190);not null;index:ix_orders_email"`
	CustomerPhone   string          `gorm:"type:varchar(40)"`
	ShippingAddress string          `gorm:"type:text"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ItemCount       int             `gorm:"not null"`
	Status          string          `gorm:"type:varchar(16);not null;index:ix_orders_status"`
	CreatedAt       time.Time       `gorm:"not null;index:ix_orders_created_at"`
	UpdatedAt       time.Time       `gorm:"not null"`

	Items  []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Events []StatusEvent `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)"`
	OrderID     string          `gorm:"type:varchar(36);not null;index:ix_order_items_order_id"`
	Position    int             `gorm:"not null"`
	ProductID   string          `gorm:"type:varchar(36);not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	SKU         string          `gorm:"type:varchar(64)"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity    int             `gorm:"not null"`
}

func (OrderItem) TableName() string { return "order_items" }

// StatusEvent is the append-only status log.
type StatusEvent struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	OrderID   string    `gorm:"type:varchar(36);not null;index:ix_order_status_events_order_id"`
	Status    string    `gorm:"type:varchar(16);not null"`
	Message   string    `gorm:"type:text"`
	AdminName string    `gorm:"type:varchar(120)"`
	CreatedAt time.Time `gorm:"not null"`
}

func (StatusEvent) TableName() string { return "order_status_events" }

// Wire converts the row (with whatever associations were loaded) to the API shape.
func (o Order) Wire() orders.Order {
	out := orders.Order{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		TotalAmount:     o.TotalAmount,
		ItemCount:       o.ItemCount,
		Status:          orders.Status(o.Status),
		CreatedAt:       o.CreatedAt,
		ShippingAddress: o.ShippingAddress,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, orders.Item{
			Product:  orders.ProductRef{ID: it.ProductID, Name: it.ProductName, SKU: it.SKU},
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	for _, e := range o.Events {
		out.StatusHistory = append(out.StatusHistory, e.Wire())
	}
	return out
}

func (e StatusEvent) Wire() orders.HistoryEntry {
	return orders.HistoryEntry{
		Status:    orders.Status(e.Status),
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
		AdminName: e.AdminName,
	}
}
