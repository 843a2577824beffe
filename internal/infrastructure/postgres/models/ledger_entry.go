package models

import "time"

// LedgerEntryModel rows are append-only: no updates, no deletes.
type LedgerEntryModel struct {
	ID          string  `gorm:"primaryKey"`
	Reference   string  `gorm:"uniqueIndex:idx_ledger_reference"`
	WalletID    string  `gorm:"index:idx_ledger_wallet"`
	Amount      int64   `gorm:"not null"`
	Kind        string  `gorm:"not null"`
	OrderID     *string `gorm:"index:idx_ledger_order"`
	Description string
	CreatedAt   time.Time `gorm:"index:idx_ledger_created_at"`
}

func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}
