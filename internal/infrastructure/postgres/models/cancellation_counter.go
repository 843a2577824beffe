package models

import "time"

type CancellationCounterModel struct {
	UserID             string `gorm:"primaryKey"`
	CancellationsCount int64  `gorm:"not null;default:0"`
	IsSuspect          bool   `gorm:"not null;default:false"`
	UpdatedAt          time.Time
}

func (CancellationCounterModel) TableName() string {
	return "cancellation_counters"
}
