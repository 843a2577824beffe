package mappers

import (
	"github.com/LavaJover/booking-settlement-service/internal/domain"
	"github.com/LavaJover/booking-settlement-service/internal/infrastructure/postgres/models"
)

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:           order.ID,
		CustomerID:   order.CustomerID,
		ProviderID:   order.ProviderID,
		ServiceID:    order.ServiceID,
		TotalAmount:  int64(order.TotalAmount),
		Commission:   int64(order.Commission),
		Currency:     order.Currency,
		Status:       string(order.Status),
		ServiceDate:  order.ServiceDate,
		Address:      order.Address,
		CancelledBy:  order.CancelledBy,
		CancelReason: order.CancelReason,
		FundedAt:     order.FundedAt,
		CancelledAt:  order.CancelledAt,
		CompletedAt:  order.CompletedAt,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		ID:           model.ID,
		CustomerID:   model.CustomerID,
		ProviderID:   model.ProviderID,
		ServiceID:    model.ServiceID,
		TotalAmount:  domain.Money(model.TotalAmount),
		Commission:   domain.Money(model.Commission),
		Currency:     model.Currency,
		Status:       domain.OrderStatus(model.Status),
		ServiceDate:  model.ServiceDate,
		Address:      model.Address,
		CancelledBy:  model.CancelledBy,
		CancelReason: model.CancelReason,
		FundedAt:     model.FundedAt,
		CancelledAt:  model.CancelledAt,
		CompletedAt:  model.CompletedAt,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
