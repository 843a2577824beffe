package settlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
)

// Progress marks the provider as having started the work.
func (uc *DefaultSettlementUsecase) Progress(ctx context.Context, orderID, providerID string) (*domain.Order, error) {
	start := time.Now()

	var out *domain.Order
	err := uc.withConflictRetry(ctx, func(ctx context.Context, s domain.Store) error {
		order, err := s.Orders().GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order.ProviderID != providerID {
			return domain.NewNotFound("order", orderID)
		}
		if !domain.CanTransition(order.Status, domain.StatusInProgress) {
			return domain.NewInvalidTransition(order.Status, domain.StatusInProgress)
		}

		if err := s.Orders().ChangeStatus(ctx, order.ID, domain.StatusChange{
			From: order.Status,
			To:   domain.StatusInProgress,
		}); err != nil {
			return err
		}

		order.Status = domain.StatusInProgress
		order.UpdatedAt = time.Now()
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, out.ID, domain.EventOrderInProgress)
	uc.Metrics.ObserveDuration("progress", time.Since(start).Seconds())
	slog.Info("order in progress", "order_id", out.ID, "provider_id", providerID)

	return out, nil
}
