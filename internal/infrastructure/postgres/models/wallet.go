package models

import "time"

type WalletModel struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"uniqueIndex:idx_wallets_user"`
	Balance   int64  `gorm:"not null;check:balance >= 0"`
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (WalletModel) TableName() string {
	return "wallets"
}
