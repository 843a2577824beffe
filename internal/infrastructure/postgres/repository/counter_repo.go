package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
	"github.com/LavaJover/booking-settlement-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/booking-settlement-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormCounterRepository struct {
	DB *gorm.DB
}

func NewGormCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{DB: db}
}

// Increment is a single upsert: the count bump and the threshold
// compare happen in SQL, so concurrent cancellations by the same user
// cannot observe a stale count, and the flag never flips back.
func (r *GormCounterRepository) Increment(ctx context.Context, userID string, threshold int64) (*domain.CancellationCounter, error) {
	now := time.Now()
	model := models.CancellationCounterModel{
		UserID:             userID,
		CancellationsCount: 1,
		IsSuspect:          1 > threshold,
		UpdatedAt:          now,
	}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"cancellations_count": gorm.Expr("cancellation_counters.cancellations_count + 1"),
			"is_suspect":          gorm.Expr("cancellation_counters.is_suspect OR cancellation_counters.cancellations_count + 1 > ?", threshold),
			"updated_at":          now,
		}),
	}).Create(&model).Error
	if err != nil {
		return nil, fmt.Errorf("failed to increment cancellation counter: %w", err)
	}

	return r.GetByUserID(ctx, userID)
}

func (r *GormCounterRepository) GetByUserID(ctx context.Context, userID string) (*domain.CancellationCounter, error) {
	var model models.CancellationCounterModel
	if err := r.DB.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("cancellation counter", userID)
		}
		return nil, fmt.Errorf("failed to load cancellation counter: %w", err)
	}
	return mappers.ToDomainCounter(&model), nil
}
