package domain

import (
	"context"
	"time"
)

// StatusChange is a compare-and-swap on order status plus the fields a
// transition is allowed to touch. Implementations must fail with a
// KindConflict error when the From precondition no longer holds.
type StatusChange struct {
	From         OrderStatus
	To           OrderStatus
	FundedAt     *time.Time
	CancelledBy  *string
	CancelReason *string
	CancelledAt  *time.Time
	CompletedAt  *time.Time
}

type OrderFilter struct {
	Statuses  []OrderStatus
	DateFrom  time.Time
	DateTo    time.Time
	Page      int64
	Limit     int64
	SortBy    string
	SortOrder string
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
	// GetByIDForUpdate takes a row lock inside the current transaction.
	GetByIDForUpdate(ctx context.Context, orderID string) (*Order, error)
	ChangeStatus(ctx context.Context, orderID string, change StatusChange) error
	ListByCustomer(ctx context.Context, customerID string, filter OrderFilter) ([]*Order, int64, error)
	ListByProvider(ctx context.Context, providerID string, filter OrderFilter) ([]*Order, int64, error)
	// FindOverdue returns funded, non-terminal orders whose service date
	// passed before the deadline.
	FindOverdue(ctx context.Context, deadline time.Time) ([]*Order, error)
}

type WalletRepository interface {
	GetByID(ctx context.Context, walletID string) (*Wallet, error)
	GetByUserID(ctx context.Context, userID string) (*Wallet, error)
	// Debit decrements the balance only if it stays non-negative,
	// failing with KindInsufficientFunds otherwise. The check and the
	// write are one statement so concurrent debits cannot both pass
	// against a stale balance.
	Debit(ctx context.Context, walletID string, amount Money) error
	Credit(ctx context.Context, walletID string, amount Money) error
}

type LedgerRepository interface {
	Append(ctx context.Context, entry *LedgerEntry) error
	ListByWallet(ctx context.Context, walletID string, page, limit int64) ([]*LedgerEntry, int64, error)
	ListByOrder(ctx context.Context, orderID string) ([]*LedgerEntry, error)
	// SumByWallet is the audit query: must equal the wallet balance.
	SumByWallet(ctx context.Context, walletID string) (Money, error)
}

type CounterRepository interface {
	// Increment bumps the user's cancellation count and raises the
	// suspect flag when the post-increment count exceeds threshold.
	// Increment-then-compare is a single atomic statement.
	Increment(ctx context.Context, userID string, threshold int64) (*CancellationCounter, error)
	GetByUserID(ctx context.Context, userID string) (*CancellationCounter, error)
}

// Store bundles the repositories bound to one transaction scope.
type Store interface {
	Orders() OrderRepository
	Wallets() WalletRepository
	Ledger() LedgerRepository
	Counters() CounterRepository
}

// TxManager runs fn inside a single atomic unit of work. Either every
// write made through the Store commits, or none do.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}
