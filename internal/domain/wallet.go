package domain

import "time"

// Money is an amount in the currency's minor unit (kopecks, cents).
type Money int64

type Wallet struct {
	ID        string
	UserID    string
	Balance   Money
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type EntryKind string

const (
	EntryPayment    EntryKind = "PAYMENT"
	EntryCommission EntryKind = "COMMISSION"
	EntryRefund     EntryKind = "REFUND"
	EntryWithdrawal EntryKind = "WITHDRAWAL"
	EntryTopup      EntryKind = "TOPUP"
)

// LedgerEntry is an append-only record of a single balance change.
// Amount is signed: debits are negative, credits positive. For any
// wallet the sum of its entries equals its current balance.
type LedgerEntry struct {
	ID          string
	Reference   string
	WalletID    string
	Amount      Money
	Kind        EntryKind
	OrderID     *string
	Description string
	CreatedAt   time.Time
}
