package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pehlione.com/admin/internal/modules/orders"
)

var (
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrNotActionable     = errors.New("order not actionable")
)

var transitions = map[orders.Status][]orders.Status{
	orders.StatusPending:    {orders.StatusConfirmed, orders.StatusCancelled},
	orders.StatusConfirmed:  {orders.StatusProcessing, orders.StatusCancelled},
	orders.StatusProcessing: {orders.StatusShipped, orders.StatusCancelled},
	orders.StatusShipped:    {orders.StatusDelivered},
}

// CanTransition reports whether the backend accepts from -> to.
func CanTransition(from, to orders.Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type TransitionInput struct {
	OrderID   string
	To        orders.Status
	Message   string
	AdminName string
}

type TransitionResult struct {
	Order Order
	Event StatusEvent
}

func (r *Repo) Transition(ctx context.Context, in TransitionInput) (TransitionResult, error) {
	if in.OrderID == "" || !in.To.Valid() {
		return TransitionResult{}, ErrNotActionable
	}

	var res TransitionResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o Order
		// sqlite has no row locks; its dialect drops the FOR UPDATE clause
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&o, "id = ?", in.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		from := orders.Status(o.Status)
		if !CanTransition(from, in.To) {
			return ErrInvalidTransition
		}

		now := time.Now().UTC()
		upd := tx.Model(&Order{}).
			Where("id = ? AND status = ?", o.ID, o.Status). // optimistic guard
			Updates(map[string]any{"status": string(in.To), "updated_at": now})
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		ev := StatusEvent{
			ID:        uuid.NewString(),
			OrderID:   o.ID,
			Status:    string(in.To),
			Message:   strings.TrimSpace(in.Message),
			AdminName: strings.TrimSpace(in.AdminName),
			CreatedAt: now,
		}
		if err := tx.Create(&ev).Error; err != nil {
			return err
		}

		o.Status = string(in.To)
		o.UpdatedAt = now
		res = TransitionResult{Order: o, Event: ev}
		return nil
	})
	if err != nil {
		return TransitionResult{}, err
	}
	return res, nil
}
