package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
	"github.com/LavaJover/booking-settlement-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/booking-settlement-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOrderRepository struct {
	DB *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{DB: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := r.DB.WithContext(ctx).Create(mappers.ToGORMOrder(order)).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *GormOrderRepository) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var model models.OrderModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("order", orderID)
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return mappers.ToDomainOrder(&model), nil
}

func (r *GormOrderRepository) GetByIDForUpdate(ctx context.Context, orderID string) (*domain.Order, error) {
	var model models.OrderModel
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("order", orderID)
		}
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}
	return mappers.ToDomainOrder(&model), nil
}

// ChangeStatus is the optimistic compare-and-swap: the update applies
// only while the row still carries the expected From status.
func (r *GormOrderRepository) ChangeStatus(ctx context.Context, orderID string, change domain.StatusChange) error {
	updates := map[string]interface{}{
		"status":     string(change.To),
		"updated_at": time.Now(),
	}
	if change.FundedAt != nil {
		updates["funded_at"] = *change.FundedAt
	}
	if change.CancelledBy != nil {
		updates["cancelled_by"] = *change.CancelledBy
	}
	if change.CancelReason != nil {
		updates["cancel_reason"] = *change.CancelReason
	}
	if change.CancelledAt != nil {
		updates["cancelled_at"] = *change.CancelledAt
	}
	if change.CompletedAt != nil {
		updates["completed_at"] = *change.CompletedAt
	}

	res := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", orderID, string(change.From)).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.DB.WithContext(ctx).Model(&models.OrderModel{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check order existence: %w", err)
		}
		if count == 0 {
			return domain.NewNotFound("order", orderID)
		}
		return domain.NewConflict(fmt.Sprintf("order %s left status %s concurrently", orderID, change.From))
	}
	return nil
}

func (r *GormOrderRepository) ListByCustomer(ctx context.Context, customerID string, filter domain.OrderFilter) ([]*domain.Order, int64, error) {
	return r.list(ctx, "customer_id = ?", customerID, filter)
}

func (r *GormOrderRepository) ListByProvider(ctx context.Context, providerID string, filter domain.OrderFilter) ([]*domain.Order, int64, error) {
	return r.list(ctx, "provider_id = ?", providerID, filter)
}

func (r *GormOrderRepository) list(ctx context.Context, cond string, arg string, filter domain.OrderFilter) ([]*domain.Order, int64, error) {
	safeSortBy := "created_at"
	switch filter.SortBy {
	case "service_date":
		safeSortBy = "service_date"
	case "total_amount":
		safeSortBy = "total_amount"
	case "created_at", "":
	}
	safeSortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		safeSortOrder = "ASC"
	}

	query := r.DB.WithContext(ctx).Model(&models.OrderModel{}).Where(cond, arg)
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		query = query.Where("status IN (?)", statuses)
	}
	if !filter.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		query = query.Where("created_at <= ?", filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var orderModels []models.OrderModel
	err := query.
		Order(fmt.Sprintf("%s %s", safeSortBy, safeSortOrder)).
		Offset(int((page - 1) * limit)).
		Limit(int(limit)).
		Find(&orderModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]*domain.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModels[i])
	}
	return orders, total, nil
}

func (r *GormOrderRepository) FindOverdue(ctx context.Context, deadline time.Time) ([]*domain.Order, error) {
	var orderModels []models.OrderModel
	err := r.DB.WithContext(ctx).
		Where("status = ?", string(domain.StatusAccepted)).
		Where("funded_at IS NOT NULL").
		Where("service_date < ?", deadline).
		Find(&orderModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find overdue orders: %w", err)
	}

	orders := make([]*domain.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModels[i])
	}
	return orders, nil
}
