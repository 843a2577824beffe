package settlement

import (
	"context"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
)

func (uc *DefaultSettlementUsecase) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var out *domain.Order
	err := uc.TxManager.Do(ctx, func(ctx context.Context, s domain.Store) error {
		order, err := s.Orders().GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *DefaultSettlementUsecase) GetOrdersByCustomerID(ctx context.Context, customerID string, filter domain.OrderFilter) ([]*domain.Order, int64, error) {
	var (
		orders []*domain.Order
		total  int64
	)
	err := uc.TxManager.Do(ctx, func(ctx context.Context, s domain.Store) error {
		var err error
		orders, total, err = s.Orders().ListByCustomer(ctx, customerID, filter)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (uc *DefaultSettlementUsecase) GetOrdersByProviderID(ctx context.Context, providerID string, filter domain.OrderFilter) ([]*domain.Order, int64, error) {
	var (
		orders []*domain.Order
		total  int64
	)
	err := uc.TxManager.Do(ctx, func(ctx context.Context, s domain.Store) error {
		var err error
		orders, total, err = s.Orders().ListByProvider(ctx, providerID, filter)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// WalletStatement is the wallet read model: current balance, a page of
// ledger entries and the full ledger sum for reconciliation.
type WalletStatement struct {
	Wallet    *domain.Wallet
	Entries   []*domain.LedgerEntry
	Total     int64
	LedgerSum domain.Money
}

func (uc *DefaultSettlementUsecase) GetWalletStatement(ctx context.Context, userID string, page, limit int64) (*WalletStatement, error) {
	var out *WalletStatement
	err := uc.TxManager.Do(ctx, func(ctx context.Context, s domain.Store) error {
		wallet, err := s.Wallets().GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		entries, total, err := s.Ledger().ListByWallet(ctx, wallet.ID, page, limit)
		if err != nil {
			return err
		}
		sum, err := s.Ledger().SumByWallet(ctx, wallet.ID)
		if err != nil {
			return err
		}
		out = &WalletStatement{Wallet: wallet, Entries: entries, Total: total, LedgerSum: sum}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
