package repository

import (
	"context"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
	"gorm.io/gorm"
)

// GormStore bundles the repositories bound to one *gorm.DB handle,
// which is either the root connection or an open transaction.
type GormStore struct {
	orders   *GormOrderRepository
	wallets  *GormWalletRepository
	ledger   *GormLedgerRepository
	counters *GormCounterRepository
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		orders:   NewGormOrderRepository(db),
		wallets:  NewGormWalletRepository(db),
		ledger:   NewGormLedgerRepository(db),
		counters: NewGormCounterRepository(db),
	}
}

func (s *GormStore) Orders() domain.OrderRepository     { return s.orders }
func (s *GormStore) Wallets() domain.WalletRepository   { return s.wallets }
func (s *GormStore) Ledger() domain.LedgerRepository    { return s.ledger }
func (s *GormStore) Counters() domain.CounterRepository { return s.counters }

// GormTxManager runs a unit of work inside one database transaction so
// order status, wallet balances and ledger entries commit together or
// not at all.
type GormTxManager struct {
	DB *gorm.DB
}

func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{DB: db}
}

func (m *GormTxManager) Do(ctx context.Context, fn func(ctx context.Context, s domain.Store) error) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewGormStore(tx))
	})
}
