package settlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
)

// Complete closes the order and releases the escrowed payout to the
// provider in the same transaction as the status write.
func (uc *DefaultSettlementUsecase) Complete(ctx context.Context, orderID, providerID string) (*domain.Order, error) {
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
		if !domain.CanTransition(order.Status, domain.StatusCompleted) {
			return domain.NewInvalidTransition(order.Status, domain.StatusCompleted)
		}

		if order.Funded() {
			if err := uc.payoutOrder(ctx, s, order); err != nil {
				return err
			}
		}

		now := time.Now()
		if err := s.Orders().ChangeStatus(ctx, order.ID, domain.StatusChange{
			From:        order.Status,
			To:          domain.StatusCompleted,
			CompletedAt: &now,
		}); err != nil {
			return err
		}

		order.Status = domain.StatusCompleted
		order.CompletedAt = &now
		order.UpdatedAt = now
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, out.ID, domain.EventOrderCompleted)
	uc.releaseNumber(ctx, out.ID)
	uc.Metrics.RecordCompleted(out.Currency)
	uc.Metrics.ObserveDuration("complete", time.Since(start).Seconds())
	slog.Info("order completed", "order_id", out.ID, "provider_id", providerID)

	return out, nil
}
