package settlement

import (
	"context"
	"log/slog"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
)

// Topup credits a user's wallet outside of any order.
func (uc *DefaultSettlementUsecase) Topup(ctx context.Context, userID string, amount domain.Money, description string) (*domain.Wallet, error) {
	if amount <= 0 {
		return nil, domain.NewValidation("topup amount must be positive")
	}

	var out *domain.Wallet
	err := uc.TxManager.Do(ctx, func(ctx context.Context, s domain.Store) error {
		wallet, err := s.Wallets().GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if err := uc.Ledger.Credit(ctx, s, wallet.ID, amount, domain.EntryTopup, nil, description); err != nil {
			return err
		}
		out, err = s.Wallets().GetByID(ctx, wallet.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("wallet topped up", "user_id", userID, "amount", amount)
	return out, nil
}

// Withdraw debits a user's wallet, failing with InsufficientFunds when
// the balance cannot cover the amount. The platform wallet is off
// limits here: it holds the escrowed payouts of open orders.
func (uc *DefaultSettlementUsecase) Withdraw(ctx context.Context, userID string, amount domain.Money, description string) (*domain.Wallet, error) {
	if amount <= 0 {
		return nil, domain.NewValidation("withdrawal amount must be positive")
	}
	if userID == uc.PlatformUserID {
		return nil, domain.NewValidation("platform wallet cannot be withdrawn directly")
	}

	var out *domain.Wallet
	err := uc.TxManager.Do(ctx, func(ctx context.Context, s domain.Store) error {
		wallet, err := s.Wallets().GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if err := uc.Ledger.Debit(ctx, s, wallet.ID, amount, domain.EntryWithdrawal, nil, description); err != nil {
			return err
		}
		out, err = s.Wallets().GetByID(ctx, wallet.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("wallet withdrawal", "user_id", userID, "amount", amount)
	return out, nil
}
