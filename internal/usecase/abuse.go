package usecase

import (
	"context"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
)

// AbusePolicy flags users who cancel too often. The threshold check is
// delegated to the counter repository, which performs the increment and
// the compare as one atomic statement.
type AbusePolicy struct {
	threshold int64
}

func NewAbusePolicy(threshold int64) *AbusePolicy {
	return &AbusePolicy{threshold: threshold}
}

func (p *AbusePolicy) Threshold() int64 {
	return p.threshold
}

// RecordCancellation must be called only after the refund for the
// triggering transition is durably staged in the same transaction.
func (p *AbusePolicy) RecordCancellation(ctx context.Context, s domain.Store, userID string) (*domain.CancellationCounter, error) {
	return s.Counters().Increment(ctx, userID, p.threshold)
}
