package http

import (
	"net/http"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
	"github.com/gin-gonic/gin"
)

type orderResponse struct {
	ID           string  `json:"id"`
	CustomerID   string  `json:"customer_id"`
	ProviderID   string  `json:"provider_id"`
	ServiceID    string  `json:"service_id"`
	TotalAmount  int64   `json:"total_amount"`
	Commission   int64   `json:"commission"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
	ServiceDate  string  `json:"service_date"`
	Address      string  `json:"address"`
	CancelledBy  *string `json:"cancelled_by,omitempty"`
	CancelReason *string `json:"cancel_reason,omitempty"`
	FundedAt     *string `json:"funded_at,omitempty"`
	CancelledAt  *string `json:"cancelled_at,omitempty"`
	CompletedAt  *string `json:"completed_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		ProviderID:   o.ProviderID,
		ServiceID:    o.ServiceID,
		TotalAmount:  int64(o.TotalAmount),
		Commission:   int64(o.Commission),
		Currency:     o.Currency,
		Status:       string(o.Status),
		ServiceDate:  o.ServiceDate.UTC().Format(time.RFC3339),
		Address:      o.Address,
		CancelledBy:  o.CancelledBy,
		CancelReason: o.CancelReason,
		FundedAt:     formatTimePtr(o.FundedAt),
		CancelledAt:  formatTimePtr(o.CancelledAt),
		CompletedAt:  formatTimePtr(o.CompletedAt),
		CreatedAt:    o.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    o.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toOrderResponses(orders []*domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// statusFor maps the error taxonomy onto HTTP codes. Non-domain errors
// fall through to 500 without leaking their text.
func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindInvalidTransition, domain.KindConflict:
		return http.StatusConflict
	case domain.KindInsufficientFunds:
		return http.StatusPaymentRequired
	case domain.KindServiceUnavailable:
		return http.StatusUnprocessableEntity
	case domain.KindDependency:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"kind":  string(domain.KindOf(err)),
	})
}
