package mappers

import (
	"github.com/LavaJover/booking-settlement-service/internal/domain"
	"github.com/LavaJover/booking-settlement-service/internal/infrastructure/postgres/models"
)

func ToDomainWallet(model *models.WalletModel) *domain.Wallet {
	return &domain.Wallet{
		ID:        model.ID,
		UserID:    model.UserID,
		Balance:   domain.Money(model.Balance),
		Currency:  model.Currency,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMLedgerEntry(entry *domain.LedgerEntry) *models.LedgerEntryModel {
	return &models.LedgerEntryModel{
		ID:          entry.ID,
		Reference:   entry.Reference,
		WalletID:    entry.WalletID,
		Amount:      int64(entry.Amount),
		Kind:        string(entry.Kind),
		OrderID:     entry.OrderID,
		Description: entry.Description,
		CreatedAt:   entry.CreatedAt,
	}
}

func ToDomainLedgerEntry(model *models.LedgerEntryModel) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:          model.ID,
		Reference:   model.Reference,
		WalletID:    model.WalletID,
		Amount:      domain.Money(model.Amount),
		Kind:        domain.EntryKind(model.Kind),
		OrderID:     model.OrderID,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
	}
}

func ToDomainCounter(model *models.CancellationCounterModel) *domain.CancellationCounter {
	return &domain.CancellationCounter{
		UserID:             model.UserID,
		CancellationsCount: model.CancellationsCount,
		IsSuspect:          model.IsSuspect,
		UpdatedAt:          model.UpdatedAt,
	}
}
