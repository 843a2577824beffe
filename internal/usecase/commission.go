package usecase

import (
	"fmt"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
)

// CommissionEngine computes the platform/provider split of an order
// amount. The rate is configured in basis points; the commission is
// rounded half up to the minor unit exactly once and the provider share
// is the remainder, so the two always sum to the full amount.
type CommissionEngine struct {
	rateBps int64
}

func NewCommissionEngine(rateBps int64) (*CommissionEngine, error) {
	if rateBps < 0 || rateBps > 10000 {
		return nil, fmt.Errorf("commission rate must be within [0, 10000] bps, got %d", rateBps)
	}
	return &CommissionEngine{rateBps: rateBps}, nil
}

func (e *CommissionEngine) RateBps() int64 {
	return e.rateBps
}

func (e *CommissionEngine) Split(amount domain.Money) (commission, provider domain.Money, err error) {
	if amount < 0 {
		return 0, 0, domain.NewValidation(fmt.Sprintf("amount must be non-negative, got %d", amount))
	}
	commission = domain.Money((int64(amount)*e.rateBps + 5000) / 10000)
	return commission, amount - commission, nil
}
