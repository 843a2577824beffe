package settlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
)

// Cancel moves a PENDING or ACCEPTED order to CANCELLED, refunding the
// full captured amount to the customer. Only the order's customer may
// cancel through this path; providers decline via Reject and the
// overdue sweep cancels as the system actor. The refund, the status
// write and the abuse counter commit as one unit or not at all.
func (uc *DefaultSettlementUsecase) Cancel(ctx context.Context, orderID, actorID, reason string) (*domain.Order, error) {
	return uc.cancelOrder(ctx, orderID, actorID, reason, true)
}

// byCustomer marks the public cancel path: the actor must own the
// order and the cancellation feeds their abuse counter. The sweep
// passes false and skips both.
func (uc *DefaultSettlementUsecase) cancelOrder(ctx context.Context, orderID, actorID, reason string, byCustomer bool) (*domain.Order, error) {
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
		if byCustomer && order.CustomerID != actorID {
			return domain.NewNotFound("order", orderID)
		}
		if !domain.CanTransition(order.Status, domain.StatusCancelled) {
			return domain.NewInvalidTransition(order.Status, domain.StatusCancelled)
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
			To:           domain.StatusCancelled,
			CancelledBy:  &actorID,
			CancelReason: &reason,
			CancelledAt:  &now,
		}); err != nil {
			return err
		}

		// Counter bump stays behind the refund: if the refund failed we
		// never get here and the rollback drops everything.
		if byCustomer {
			counter, err := uc.Abuse.RecordCancellation(ctx, s, actorID)
			if err != nil {
				return err
			}
			flaggedNow = counter.IsSuspect && counter.CancellationsCount == uc.Abuse.Threshold()+1
		}

		order.Status = domain.StatusCancelled
		order.CancelledBy = &actorID
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
	uc.Metrics.RecordCancelled(out.Currency, refunded)
	if flaggedNow {
		uc.Metrics.RecordSuspectFlagged()
		slog.Warn("user flagged as suspect after repeated cancellations", "user_id", actorID)
	}

	uc.Metrics.ObserveDuration("cancel", time.Since(start).Seconds())
	slog.Info("order cancelled", "order_id", out.ID, "actor_id", actorID, "refunded", refunded)

	return out, nil
}
