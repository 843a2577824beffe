package settlement

import (
	"context"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
	"github.com/LavaJover/booking-settlement-service/internal/infrastructure/metrics"
	"github.com/LavaJover/booking-settlement-service/internal/usecase"
)

// SettlementUsecase is the only entry point the routing layer uses.
// Every call returns either the updated order or a typed domain error;
// no partial order is ever returned.
type SettlementUsecase interface {
	Create(ctx context.Context, input *CreateOrderInput) (*domain.Order, error)
	Accept(ctx context.Context, orderID, providerID string) (*domain.Order, error)
	Reject(ctx context.Context, orderID, providerID, reason string) (*domain.Order, error)
	Cancel(ctx context.Context, orderID, actorID, reason string) (*domain.Order, error)
	Progress(ctx context.Context, orderID, providerID string) (*domain.Order, error)
	Complete(ctx context.Context, orderID, providerID string) (*domain.Order, error)

	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	GetOrdersByCustomerID(ctx context.Context, customerID string, filter domain.OrderFilter) ([]*domain.Order, int64, error)
	GetOrdersByProviderID(ctx context.Context, providerID string, filter domain.OrderFilter) ([]*domain.Order, int64, error)
	GetWalletStatement(ctx context.Context, userID string, page, limit int64) (*WalletStatement, error)

	Topup(ctx context.Context, userID string, amount domain.Money, description string) (*domain.Wallet, error)
	Withdraw(ctx context.Context, userID string, amount domain.Money, description string) (*domain.Wallet, error)

	CancelOverdueOrders(ctx context.Context) error
}

type DefaultSettlementUsecase struct {
	TxManager  domain.TxManager
	Ledger     *usecase.WalletLedger
	Commission *usecase.CommissionEngine
	Abuse      *usecase.AbusePolicy
	Catalog    domain.ServiceCatalog
	Users      domain.UserDirectory
	Notifier   domain.NotificationTrigger
	Numbers    domain.VirtualNumberAllocator
	Metrics    *metrics.SettlementMetrics

	// PlatformUserID owns the wallet that accumulates commission.
	PlatformUserID string
	// OverdueGrace is how long past the service date a funded order may
	// sit without progress before the sweep cancels it.
	OverdueGrace time.Duration
}

func NewDefaultSettlementUsecase(
	txManager domain.TxManager,
	ledger *usecase.WalletLedger,
	commission *usecase.CommissionEngine,
	abuse *usecase.AbusePolicy,
	catalog domain.ServiceCatalog,
	users domain.UserDirectory,
	notifier domain.NotificationTrigger,
	numbers domain.VirtualNumberAllocator,
	settlementMetrics *metrics.SettlementMetrics,
	platformUserID string,
	overdueGrace time.Duration,
) *DefaultSettlementUsecase {
	return &DefaultSettlementUsecase{
		TxManager:      txManager,
		Ledger:         ledger,
		Commission:     commission,
		Abuse:          abuse,
		Catalog:        catalog,
		Users:          users,
		Notifier:       notifier,
		Numbers:        numbers,
		Metrics:        settlementMetrics,
		PlatformUserID: platformUserID,
		OverdueGrace:   overdueGrace,
	}
}

// withConflictRetry retries the unit of work exactly once when the
// optimistic status check lost the race. Every other error surfaces
// as-is: retrying InsufficientFunds or InvalidTransition cannot change
// the outcome.
func (uc *DefaultSettlementUsecase) withConflictRetry(ctx context.Context, fn func(ctx context.Context, s domain.Store) error) error {
	err := uc.TxManager.Do(ctx, fn)
	if domain.IsKind(err, domain.KindConflict) {
		return uc.TxManager.Do(ctx, fn)
	}
	return err
}
