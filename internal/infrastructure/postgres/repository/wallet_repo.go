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
)

type GormWalletRepository struct {
	DB *gorm.DB
}

func NewGormWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{DB: db}
}

func (r *GormWalletRepository) GetByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	var model models.WalletModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", walletID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("wallet", walletID)
		}
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	return mappers.ToDomainWallet(&model), nil
}

func (r *GormWalletRepository) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	var model models.WalletModel
	if err := r.DB.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("wallet for user", userID)
		}
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	return mappers.ToDomainWallet(&model), nil
}

// Debit folds the balance check into the UPDATE predicate so two
// concurrent debits can never both pass against a stale balance.
func (r *GormWalletRepository) Debit(ctx context.Context, walletID string, amount domain.Money) error {
	res := r.DB.WithContext(ctx).
		Model(&models.WalletModel{}).
		Where("id = ? AND balance >= ?", walletID, int64(amount)).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", int64(amount)),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to debit wallet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.DB.WithContext(ctx).Model(&models.WalletModel{}).Where("id = ?", walletID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check wallet existence: %w", err)
		}
		if count == 0 {
			return domain.NewNotFound("wallet", walletID)
		}
		return domain.NewInsufficientFunds(walletID, amount)
	}
	return nil
}

func (r *GormWalletRepository) Credit(ctx context.Context, walletID string, amount domain.Money) error {
	res := r.DB.WithContext(ctx).
		Model(&models.WalletModel{}).
		Where("id = ?", walletID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", int64(amount)),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to credit wallet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFound("wallet", walletID)
	}
	return nil
}
