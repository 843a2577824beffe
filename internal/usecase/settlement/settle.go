package settlement

import (
	"context"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
)

// orderWallets are the three parties of a settlement.
type orderWallets struct {
	customer *domain.Wallet
	provider *domain.Wallet
	platform *domain.Wallet
}

func (uc *DefaultSettlementUsecase) resolveWallets(ctx context.Context, s domain.Store, order *domain.Order) (*orderWallets, error) {
	customer, err := s.Wallets().GetByUserID(ctx, order.CustomerID)
	if err != nil {
		return nil, err
	}
	provider, err := s.Wallets().GetByUserID(ctx, order.ProviderID)
	if err != nil {
		return nil, err
	}
	platform, err := s.Wallets().GetByUserID(ctx, uc.PlatformUserID)
	if err != nil {
		return nil, err
	}
	return &orderWallets{customer: customer, provider: provider, platform: platform}, nil
}

// fundOrder captures the payment and flips PENDING to ACCEPTED. The
// status write is the optimistic precondition: if another funding
// attempt won the race the change fails with a conflict and the whole
// transaction rolls back, money included.
func (uc *DefaultSettlementUsecase) fundOrder(ctx context.Context, s domain.Store, order *domain.Order, wallets *orderWallets) error {
	if err := uc.Ledger.Settle(ctx, s,
		wallets.customer.ID, wallets.platform.ID,
		order.TotalAmount, order.Commission, order.ID,
	); err != nil {
		return err
	}

	now := time.Now()
	if err := s.Orders().ChangeStatus(ctx, order.ID, domain.StatusChange{
		From:     domain.StatusPending,
		To:       domain.StatusAccepted,
		FundedAt: &now,
	}); err != nil {
		return err
	}

	order.Status = domain.StatusAccepted
	order.FundedAt = &now
	order.UpdatedAt = now
	return nil
}

// refundOrder reverses the captured settlement in full. Callers must
// have verified the order is funded and hold its row lock.
func (uc *DefaultSettlementUsecase) refundOrder(ctx context.Context, s domain.Store, order *domain.Order, reason string) error {
	wallets, err := uc.resolveWallets(ctx, s, order)
	if err != nil {
		return err
	}
	return uc.Ledger.Refund(ctx, s,
		wallets.customer.ID, wallets.platform.ID,
		order.TotalAmount, order.ID, reason,
	)
}

// payoutOrder releases the escrowed provider share on completion.
// Same transaction as the status write.
func (uc *DefaultSettlementUsecase) payoutOrder(ctx context.Context, s domain.Store, order *domain.Order) error {
	wallets, err := uc.resolveWallets(ctx, s, order)
	if err != nil {
		return err
	}
	return uc.Ledger.Payout(ctx, s,
		wallets.provider.ID, wallets.platform.ID,
		order.TotalAmount, order.Commission, order.ID,
	)
}
