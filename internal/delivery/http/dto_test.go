package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", domain.NewNotFound("order", "o-1"), http.StatusNotFound},
		{"validation", domain.NewValidation("bad input"), http.StatusBadRequest},
		{"invalid transition", domain.NewInvalidTransition(domain.StatusCompleted, domain.StatusCancelled), http.StatusConflict},
		{"conflict", domain.NewConflict("race"), http.StatusConflict},
		{"insufficient funds", domain.NewInsufficientFunds("w-1", 100), http.StatusPaymentRequired},
		{"service unavailable", domain.NewServiceUnavailable("inactive"), http.StatusUnprocessableEntity},
		{"dependency", domain.NewDependency("catalog", errors.New("boom")), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusFor(tc.err); got != tc.want {
				t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestToOrderResponseOmitsEmptyTimestamps(t *testing.T) {
	order := &domain.Order{
		ID:          "o-1",
		Status:      domain.StatusPending,
		TotalAmount: 60000,
		Commission:  6000,
	}
	resp := toOrderResponse(order)
	if resp.FundedAt != nil || resp.CancelledAt != nil || resp.CompletedAt != nil {
		t.Error("unset timestamps must stay nil in the response")
	}
	if resp.TotalAmount != 60000 || resp.Commission != 6000 {
		t.Errorf("amounts lost in mapping: %+v", resp)
	}
}
