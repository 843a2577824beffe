package http

import (
	"context"
	"net/http"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
	"github.com/LavaJover/booking-settlement-service/internal/usecase/settlement"
	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	uc settlement.SettlementUsecase
}

func NewWalletHandler(uc settlement.SettlementUsecase) *WalletHandler {
	return &WalletHandler{uc: uc}
}

type entryResponse struct {
	ID          string  `json:"id"`
	Reference   string  `json:"reference"`
	Amount      int64   `json:"amount"`
	Kind        string  `json:"kind"`
	OrderID     *string `json:"order_id,omitempty"`
	Description string  `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

func (h *WalletHandler) GetStatement(c *gin.Context) {
	statement, err := h.uc.GetWalletStatement(
		c.Request.Context(),
		c.Param("userID"),
		parseInt64(c.Query("page"), 1),
		parseInt64(c.Query("limit"), 20),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	entries := make([]entryResponse, 0, len(statement.Entries))
	for _, e := range statement.Entries {
		entries = append(entries, entryResponse{
			ID:          e.ID,
			Reference:   e.Reference,
			Amount:      int64(e.Amount),
			Kind:        string(e.Kind),
			OrderID:     e.OrderID,
			Description: e.Description,
			CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"wallet_id":  statement.Wallet.ID,
		"user_id":    statement.Wallet.UserID,
		"balance":    int64(statement.Wallet.Balance),
		"currency":   statement.Wallet.Currency,
		"entries":    entries,
		"total":      statement.Total,
		"ledger_sum": int64(statement.LedgerSum),
	})
}

type walletAmountRequest struct {
	Amount      int64  `json:"amount" binding:"required"`
	Description string `json:"description"`
}

func (h *WalletHandler) Topup(c *gin.Context) {
	h.move(c, h.uc.Topup)
}

func (h *WalletHandler) Withdraw(c *gin.Context) {
	h.move(c, h.uc.Withdraw)
}

func (h *WalletHandler) move(
	c *gin.Context,
	op func(ctx context.Context, userID string, amount domain.Money, description string) (*domain.Wallet, error),
) {
	var req walletAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wallet, err := op(c.Request.Context(), c.Param("userID"), domain.Money(req.Amount), req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wallet_id": wallet.ID,
		"user_id":   wallet.UserID,
		"balance":   int64(wallet.Balance),
		"currency":  wallet.Currency,
	})
}
