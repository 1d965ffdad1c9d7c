package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"

	"pehlione.com/admin/internal/modules/orders"
)

type SeedOptions struct {
	Count int
	Seed  int64
	Now   time.Time
	Days  int // created_at spread backwards from Now
}

// path from pending to each status, used to write a believable history
var statusPath = map[orders.Status][]orders.Status{
	orders.StatusPending:    {orders.StatusPending},
	orders.StatusConfirmed:  {orders.StatusPending, orders.StatusConfirmed},
	orders.StatusProcessing: {orders.StatusPending, orders.StatusConfirmed, orders.StatusProcessing},
	orders.StatusShipped:    {orders.StatusPending, orders.StatusConfirmed, orders.StatusProcessing, orders.StatusShipped},
	orders.StatusDelivered:  {orders.StatusPending, orders.StatusConfirmed, orders.StatusProcessing, orders.StatusShipped, orders.StatusDelivered},
	orders.StatusCancelled:  {orders.StatusPending, orders.StatusCancelled},
}

var adminNames = []string{"Deniz", "Ece", "Mert", "system"}

// Seed fills the store with fake orders. It returns the created rows.
func (r *Repo) Seed(ctx context.Context, opt SeedOptions) ([]Order, error) {
	if opt.Now.IsZero() {
		opt.Now = time.Now().UTC()
	}
	if opt.Days <= 0 {
		opt.Days = 30
	}
	fake := faker.NewWithSeed(rand.NewSource(opt.Seed))

	out := make([]Order, 0, opt.Count)
	for i := 0; i < opt.Count; i++ {
		o := fakeOrder(fake, opt, i)
		err := r.Create(ctx, &o)
		if errors.Is(err, ErrDuplicate) {
			// an earlier seed run may have used the same number
			o = fakeOrder(fake, opt, i)
			err = r.Create(ctx, &o)
		}
		if err != nil {
			return nil, fmt.Errorf("store: seed order %d: %w", i, err)
		}
		out = append(out, o)
	}
	return out, nil
}

func fakeOrder(fake faker.Faker, opt SeedOptions, i int) Order {
	id := uuid.NewString()
	status := orders.Statuses[fake.IntBetween(0, len(orders.Statuses)-1)]
	created := opt.Now.Add(-time.Duration(fake.IntBetween(0, opt.Days*24*60)) * time.Minute).Truncate(time.Second)

	o := Order{
		ID:              id,
		OrderNumber:     "ORD-" + strings.ToUpper(cuid.Slug()) + fmt.Sprintf("%03d", i),
		CustomerName:    fake.Person().Name(),
		CustomerEmail:   strings.ToLower(fake.Internet().Email()),
		CustomerPhone:   fake.Phone().Number(),
		ShippingAddress: fake.Address().Address(),
		Status:          string(status),
		CreatedAt:       created,
		UpdatedAt:       created,
	}

	total := decimal.Zero
	n := fake.IntBetween(1, 4)
	for p := 0; p < n; p++ {
		price := decimal.NewFromFloat(fake.Float64(2, 5, 250)).Round(2)
		qty := fake.IntBetween(1, 3)
		o.Items = append(o.Items, OrderItem{
			ID:          uuid.NewString(),
			OrderID:     id,
			Position:    p,
			ProductID:   uuid.NewString(),
			ProductName: capitalize(fake.Lorem().Word()) + " " + capitalize(fake.Lorem().Word()),
			SKU:         fmt.Sprintf("SKU-%05d", fake.IntBetween(1, 99999)),
			Price:       price,
			Quantity:    qty,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
		o.ItemCount += qty
	}
	o.TotalAmount = total.Round(2)

	at := created
	for step, st := range statusPath[status] {
		msg := ""
		admin := ""
		if step > 0 {
			at = at.Add(time.Duration(fake.IntBetween(10, 600)) * time.Minute)
			admin = adminNames[fake.IntBetween(0, len(adminNames)-1)]
			msg = "Status changed to " + string(st)
		} else {
			msg = "Order placed"
		}
		o.Events = append(o.Events, StatusEvent{
			ID:        uuid.NewString(),
			OrderID:   id,
			Status:    string(st),
			Message:   msg,
			AdminName: admin,
			CreatedAt: at,
		})
	}
	return o
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
