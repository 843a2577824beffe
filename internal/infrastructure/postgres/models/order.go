package models

import "time"

type OrderModel struct {
	ID           string `gorm:"primaryKey"`
	CustomerID   string `gorm:"index:idx_orders_customer"`
	ProviderID   string `gorm:"index:idx_orders_provider"`
	ServiceID    string
	TotalAmount  int64  `gorm:"not null"`
	Commission   int64  `gorm:"not null"`
	Currency     string
	Status       string    `gorm:"index:idx_orders_status_service_date"`
	ServiceDate  time.Time `gorm:"index:idx_orders_status_service_date"`
	Address      string
	CancelledBy  *string
	CancelReason *string
	FundedAt     *time.Time
	CancelledAt  *time.Time
	CompletedAt  *time.Time
	CreatedAt    time.Time `gorm:"index:idx_orders_created_at"`
	UpdatedAt    time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}
