package orderview

import (
	"context"
	"log/slog"

	"pehlione.com/admin/internal/shared/apperr"
)

// Notice is an inline, non-blocking message rendered next to the data it
// concerns. Retryable notices get a retry control.
type Notice struct {
	Message   string
	Kind      apperr.Kind
	Category  apperr.Category
	Status    int
	Retryable bool
}

// Err rebuilds an error for transports that answer with a status code.
func (n *Notice) Err() *apperr.AppError {
	return &apperr.AppError{Kind: n.Kind, Status: n.Status, PublicMsg: n.Message}
}

func noticeFrom(err error, retryable bool) *Notice {
	n := &Notice{
		Message:   apperr.PublicMessage(err),
		Kind:      apperr.KindOf(err),
		Category:  apperr.CategoryOf(err),
		Retryable: retryable,
	}
	if ae, ok := apperr.As(err); ok {
		n.Status = ae.Status
	}
	return n
}

func logFailure(ctx context.Context, l *slog.Logger, op string, err error) {
	attrs := []slog.Attr{
		slog.String("op", op),
		slog.String("kind", string(apperr.KindOf(err))),
		slog.String("category", string(apperr.CategoryOf(err))),
		slog.Any("err", err),
	}
	if ae, ok := apperr.As(err); ok && ae.Status != 0 {
		attrs = append(attrs, slog.Int("status", ae.Status))
	}
	l.LogAttrs(ctx, slog.LevelWarn, "orderview_failed", attrs...)
}
