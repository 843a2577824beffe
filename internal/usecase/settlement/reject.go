package settlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
)

// Reject is the provider declining a booking. The captured amount goes
// back to the customer in full and the decline counts against the
// provider's cancellation record.
func (uc *DefaultSettlementUsecase) Reject(ctx context.Context, orderID, providerID, reason string) (*domain.Order, error) {
	start := time.Now()

	var (
		out        *domain.Order
		flaggedNow bool
		wasFunded  bool
	)
	err := uc.withConflictRetry(ctx, func(ctx context.Context, s domain.Store) error {
		flaggedNow = false

		order, err := s.Orders().GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order.ProviderID != providerID {
			return domain.NewNotFound("order", orderID)
		}
		if !domain.CanTransition(order.Status, domain.StatusRejected) {
			return domain.NewInvalidTransition(order.Status, domain.StatusRejected)
		}

		wasFunded = order.Funded()
		if wasFunded {
			if err := uc.refundOrder(ctx, s, order, reason); err != nil {
				return err
			}
		}

		now := time.Now()
		if err := s.Orders().ChangeStatus(ctx, order.ID, domain.StatusChange{
			From:         order.Status,
			To:           domain.StatusRejected,
			CancelledBy:  &providerID,
			CancelReason: &reason,
			CancelledAt:  &now,
		}); err != nil {
			return err
		}

		counter, err := uc.Abuse.RecordCancellation(ctx, s, providerID)
		if err != nil {
			return err
		}
		flaggedNow = counter.IsSuspect && counter.CancellationsCount == uc.Abuse.Threshold()+1

		order.Status = domain.StatusRejected
		order.CancelledBy = &providerID
		order.CancelReason = &reason
		order.CancelledAt = &now
		order.UpdatedAt = now
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	refunded := int64(0)
	if wasFunded {
		refunded = int64(out.TotalAmount)
		uc.releaseNumber(ctx, out.ID)
	}
	uc.Metrics.RecordRejected(out.Currency, refunded)
	if flaggedNow {
		uc.Metrics.RecordSuspectFlagged()
		slog.Warn("provider flagged as suspect after repeated declines", "user_id", providerID)
	}

	uc.Metrics.ObserveDuration("reject", time.Since(start).Seconds())
	slog.Info("order rejected", "order_id", out.ID, "provider_id", providerID, "refunded", refunded)

	return out, nil
}
