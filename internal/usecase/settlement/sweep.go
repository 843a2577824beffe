package settlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
)

const systemActorID = "system"

// CancelOverdueOrders cancels funded orders whose service date passed
// the grace period without the provider starting work. System cancels
// refund the customer but do not feed anyone's abuse counter.
func (uc *DefaultSettlementUsecase) CancelOverdueOrders(ctx context.Context) error {
	deadline := time.Now().Add(-uc.OverdueGrace)

	var overdue []*domain.Order
	err := uc.TxManager.Do(ctx, func(ctx context.Context, s domain.Store) error {
		var err error
		overdue, err = s.Orders().FindOverdue(ctx, deadline)
		return err
	})
	if err != nil {
		return err
	}

	for _, order := range overdue {
		if _, err := uc.cancelOrder(ctx, order.ID, systemActorID, "service date passed without progress", false); err != nil {
			slog.Error("failed to auto-cancel overdue order", "order_id", order.ID, "error", err.Error())
			continue
		}
		slog.Info("overdue order auto-cancelled", "order_id", order.ID)
	}

	return nil
}
