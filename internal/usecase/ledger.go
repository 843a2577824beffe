package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

// WalletLedger owns wallet balances and their transaction records.
// Every balance change it makes is backed by exactly one ledger entry
// appended in the same transaction scope (the Store passed in).
type WalletLedger struct {
	newReference func() string
}

func NewWalletLedger() (*WalletLedger, error) {
	gen, err := nanoid.Standard(15)
	if err != nil {
		return nil, fmt.Errorf("failed to init ledger reference generator: %w", err)
	}
	return &WalletLedger{newReference: gen}, nil
}

// Debit decrements the wallet balance, failing with InsufficientFunds
// when the balance cannot cover the amount, and appends a negative
// ledger entry. The wallet stays untouched on failure.
func (l *WalletLedger) Debit(ctx context.Context, s domain.Store, walletID string, amount domain.Money, kind domain.EntryKind, orderID *string, description string) error {
	if amount < 0 {
		return domain.NewValidation("debit amount must be non-negative")
	}
	if err := s.Wallets().Debit(ctx, walletID, amount); err != nil {
		return err
	}
	return l.append(ctx, s, walletID, -amount, kind, orderID, description)
}

// Credit increments the wallet balance and appends a positive entry.
func (l *WalletLedger) Credit(ctx context.Context, s domain.Store, walletID string, amount domain.Money, kind domain.EntryKind, orderID *string, description string) error {
	if amount < 0 {
		return domain.NewValidation("credit amount must be non-negative")
	}
	if err := s.Wallets().Credit(ctx, walletID, amount); err != nil {
		return err
	}
	return l.append(ctx, s, walletID, amount, kind, orderID, description)
}

// Settle captures an order payment: the customer pays the full amount,
// the provider's net share is parked on the platform wallet until
// completion and the commission is booked to the platform. Escrowing
// the payout keeps the refund source out of reach of provider
// withdrawals while the order can still be cancelled.
func (l *WalletLedger) Settle(ctx context.Context, s domain.Store, customerWalletID, platformWalletID string, amount, commission domain.Money, orderID string) error {
	if commission < 0 || commission > amount {
		return domain.NewValidation(fmt.Sprintf("commission %d out of range for amount %d", commission, amount))
	}
	if err := l.Debit(ctx, s, customerWalletID, amount, domain.EntryPayment, &orderID, "order payment"); err != nil {
		return err
	}
	if err := l.Credit(ctx, s, platformWalletID, amount-commission, domain.EntryPayment, &orderID, "provider payout held until completion"); err != nil {
		return err
	}
	return l.Credit(ctx, s, platformWalletID, commission, domain.EntryCommission, &orderID, "platform commission")
}

// Payout releases the escrowed net share to the provider once the
// order completes. The platform wallet always covers it: order flows
// are the only thing that moves escrowed money.
func (l *WalletLedger) Payout(ctx context.Context, s domain.Store, providerWalletID, platformWalletID string, amount, commission domain.Money, orderID string) error {
	if commission < 0 || commission > amount {
		return domain.NewValidation(fmt.Sprintf("commission %d out of range for amount %d", commission, amount))
	}
	if err := l.Debit(ctx, s, platformWalletID, amount-commission, domain.EntryPayment, &orderID, "provider payout release"); err != nil {
		return err
	}
	return l.Credit(ctx, s, providerWalletID, amount-commission, domain.EntryPayment, &orderID, "provider payout")
}

// Refund reverses a captured settlement in full: the platform wallet,
// which still holds both the escrowed payout and the commission of any
// non-terminal order, gives the whole amount back to the customer.
// At-most-once per order is the state machine's job via the status
// precondition, not the ledger's.
func (l *WalletLedger) Refund(ctx context.Context, s domain.Store, customerWalletID, platformWalletID string, amount domain.Money, orderID, reason string) error {
	if amount < 0 {
		return domain.NewValidation(fmt.Sprintf("refund amount must be non-negative, got %d", amount))
	}
	if err := l.Debit(ctx, s, platformWalletID, amount, domain.EntryRefund, &orderID, "captured funds reversal"); err != nil {
		return err
	}
	return l.Credit(ctx, s, customerWalletID, amount, domain.EntryRefund, &orderID, reason)
}

func (l *WalletLedger) append(ctx context.Context, s domain.Store, walletID string, amount domain.Money, kind domain.EntryKind, orderID *string, description string) error {
	return s.Ledger().Append(ctx, &domain.LedgerEntry{
		ID:          uuid.New().String(),
		Reference:   l.newReference(),
		WalletID:    walletID,
		Amount:      amount,
		Kind:        kind,
		OrderID:     orderID,
		Description: description,
		CreatedAt:   time.Now(),
	})
}
