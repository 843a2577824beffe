package settlement

import (
	"context"
	"log/slog"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
)

// Post-commit collaborators are best-effort side effects: a failure
// here is logged and counted but never rolls back the already
// committed order and wallet state.

func (uc *DefaultSettlementUsecase) notify(ctx context.Context, orderID string, event domain.OrderEventType) {
	if uc.Notifier == nil {
		return
	}
	if err := uc.Notifier.Notify(ctx, orderID, event); err != nil {
		uc.Metrics.RecordHookFailure("notification")
		slog.Error("failed to trigger notification", "order_id", orderID, "event", event, "error", err.Error())
	}
}

func (uc *DefaultSettlementUsecase) assignNumber(ctx context.Context, orderID string) {
	if uc.Numbers == nil {
		return
	}
	if err := uc.Numbers.Assign(ctx, orderID); err != nil {
		uc.Metrics.RecordHookFailure("virtual_number_assign")
		slog.Error("failed to assign virtual number", "order_id", orderID, "error", err.Error())
	}
}

func (uc *DefaultSettlementUsecase) releaseNumber(ctx context.Context, orderID string) {
	if uc.Numbers == nil {
		return
	}
	if err := uc.Numbers.Release(ctx, orderID); err != nil {
		uc.Metrics.RecordHookFailure("virtual_number_release")
		slog.Error("failed to release virtual number", "order_id", orderID, "error", err.Error())
	}
}
