package settlement

import (
	"context"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
)

// Accept is the provider's confirmation of a booking. Funding already
// moved the order to ACCEPTED, so a confirmation of an ACCEPTED order
// is an idempotent no-op; anything else is an invalid transition.
func (uc *DefaultSettlementUsecase) Accept(ctx context.Context, orderID, providerID string) (*domain.Order, error) {
	order, err := uc.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ProviderID != providerID {
		return nil, domain.NewNotFound("order", orderID)
	}
	if order.Status == domain.StatusAccepted {
		return order, nil
	}
	return nil, domain.NewInvalidTransition(order.Status, domain.StatusAccepted)
}
