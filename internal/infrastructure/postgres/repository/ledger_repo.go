package repository

import (
	"context"
	"fmt"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
	"github.com/LavaJover/booking-settlement-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/booking-settlement-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type GormLedgerRepository struct {
	DB *gorm.DB
}

func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{DB: db}
}

func (r *GormLedgerRepository) Append(ctx context.Context, entry *domain.LedgerEntry) error {
	if err := r.DB.WithContext(ctx).Create(mappers.ToGORMLedgerEntry(entry)).Error; err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

func (r *GormLedgerRepository) ListByWallet(ctx context.Context, walletID string, page, limit int64) ([]*domain.LedgerEntry, int64, error) {
	query := r.DB.WithContext(ctx).Model(&models.LedgerEntryModel{}).Where("wallet_id = ?", walletID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var entryModels []models.LedgerEntryModel
	err := query.
		Order("created_at DESC").
		Offset(int((page - 1) * limit)).
		Limit(int(limit)).
		Find(&entryModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	entries := make([]*domain.LedgerEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = mappers.ToDomainLedgerEntry(&entryModels[i])
	}
	return entries, total, nil
}

func (r *GormLedgerRepository) ListByOrder(ctx context.Context, orderID string) ([]*domain.LedgerEntry, error) {
	var entryModels []models.LedgerEntryModel
	err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&entryModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries by order: %w", err)
	}

	entries := make([]*domain.LedgerEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = mappers.ToDomainLedgerEntry(&entryModels[i])
	}
	return entries, nil
}

func (r *GormLedgerRepository) SumByWallet(ctx context.Context, walletID string) (domain.Money, error) {
	var sum int64
	err := r.DB.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Where("wallet_id = ?", walletID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum ledger entries: %w", err)
	}
	return domain.Money(sum), nil
}
