package settlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
	"github.com/google/uuid"
)

type CreateOrderInput struct {
	CustomerID  string
	ServiceID   string
	ServiceDate time.Time
	Address     string
}

// Create books a service and funds the order in one unit of work: the
// order either reaches ACCEPTED with money moved, or nothing persists.
func (uc *DefaultSettlementUsecase) Create(ctx context.Context, input *CreateOrderInput) (*domain.Order, error) {
	start := time.Now()

	if err := uc.validateCreateInput(input); err != nil {
		return nil, err
	}

	svc, err := uc.lookupService(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkParticipants(ctx, input.CustomerID, svc.ProviderID); err != nil {
		return nil, err
	}

	commission, _, err := uc.Commission.Split(svc.Price)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:          uuid.New().String(),
		CustomerID:  input.CustomerID,
		ProviderID:  svc.ProviderID,
		ServiceID:   svc.ID,
		TotalAmount: svc.Price,
		Commission:  commission,
		Currency:    svc.Currency,
		Status:      domain.StatusPending,
		ServiceDate: input.ServiceDate,
		Address:     input.Address,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	err = uc.TxManager.Do(ctx, func(ctx context.Context, s domain.Store) error {
		wallets, err := uc.resolveWallets(ctx, s, order)
		if err != nil {
			return err
		}
		if err := s.Orders().Create(ctx, order); err != nil {
			return err
		}
		return uc.fundOrder(ctx, s, order, wallets)
	})
	if err != nil {
		if domain.IsKind(err, domain.KindInsufficientFunds) {
			uc.Metrics.RecordInsufficientFunds(order.Currency)
		}
		return nil, err
	}

	uc.Metrics.RecordSettled(order.Currency, int64(order.TotalAmount), int64(order.Commission))
	uc.notify(ctx, order.ID, domain.EventOrderCreated)
	uc.notify(ctx, order.ID, domain.EventOrderAccepted)
	uc.assignNumber(ctx, order.ID)

	uc.Metrics.ObserveDuration("create", time.Since(start).Seconds())
	slog.Info("order settled", "order_id", order.ID, "amount", order.TotalAmount, "commission", order.Commission)

	return order, nil
}

func (uc *DefaultSettlementUsecase) validateCreateInput(input *CreateOrderInput) error {
	if input == nil || input.CustomerID == "" {
		return domain.NewValidation("customer_id is required")
	}
	if input.ServiceID == "" {
		return domain.NewValidation("service_id is required")
	}
	if input.Address == "" {
		return domain.NewValidation("address is required")
	}
	if !input.ServiceDate.After(time.Now()) {
		return domain.NewValidation("service_date must be in the future")
	}
	return nil
}

func (uc *DefaultSettlementUsecase) lookupService(ctx context.Context, serviceID string) (*domain.Service, error) {
	svc, err := uc.Catalog.GetService(ctx, serviceID)
	if err != nil {
		if domain.KindOf(err) != "" {
			return nil, err
		}
		return nil, domain.NewDependency("service catalog lookup failed", err)
	}
	if !svc.Active {
		return nil, domain.NewServiceUnavailable("service is not active")
	}
	return svc, nil
}

func (uc *DefaultSettlementUsecase) checkParticipants(ctx context.Context, customerID, providerID string) error {
	provider, err := uc.lookupAccount(ctx, providerID)
	if err != nil {
		return err
	}
	if !provider.Active || !provider.Verified {
		return domain.NewServiceUnavailable("provider is not active and verified")
	}
	customer, err := uc.lookupAccount(ctx, customerID)
	if err != nil {
		return err
	}
	if !customer.Active {
		return domain.NewServiceUnavailable("customer account is blocked")
	}
	return nil
}

func (uc *DefaultSettlementUsecase) lookupAccount(ctx context.Context, userID string) (*domain.Account, error) {
	account, err := uc.Users.GetAccount(ctx, userID)
	if err != nil {
		if domain.KindOf(err) != "" {
			return nil, err
		}
		return nil, domain.NewDependency("user directory lookup failed", err)
	}
	return account, nil
}
