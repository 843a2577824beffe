package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
	"github.com/LavaJover/booking-settlement-service/internal/usecase/settlement"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	uc settlement.SettlementUsecase
}

func NewOrderHandler(uc settlement.SettlementUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type createOrderRequest struct {
	CustomerID  string `json:"customer_id" binding:"required"`
	ServiceID   string `json:"service_id" binding:"required"`
	ServiceDate string `json:"service_date" binding:"required"`
	Address     string `json:"address" binding:"required"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	serviceDate, err := time.Parse(time.RFC3339, req.ServiceDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service_date must be RFC3339"})
		return
	}

	order, err := h.uc.Create(c.Request.Context(), &settlement.CreateOrderInput{
		CustomerID:  req.CustomerID,
		ServiceID:   req.ServiceID,
		ServiceDate: serviceDate,
		Address:     req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": toOrderResponse(order)})
}

func (h *OrderHandler) GetByID(c *gin.Context) {
	order, err := h.uc.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": toOrderResponse(order)})
}

type actorRequest struct {
	ActorID string `json:"actor_id" binding:"required"`
	Reason  string `json:"reason"`
}

func (h *OrderHandler) Accept(c *gin.Context) {
	h.transition(c, h.uc.Accept)
}

func (h *OrderHandler) Progress(c *gin.Context) {
	h.transition(c, h.uc.Progress)
}

func (h *OrderHandler) Complete(c *gin.Context) {
	h.transition(c, h.uc.Complete)
}

func (h *OrderHandler) Reject(c *gin.Context) {
	h.transitionWithReason(c, h.uc.Reject)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	h.transitionWithReason(c, h.uc.Cancel)
}

func (h *OrderHandler) transition(
	c *gin.Context,
	op func(ctx context.Context, orderID, actorID string) (*domain.Order, error),
) {
	var req actorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := op(c.Request.Context(), c.Param("id"), req.ActorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": toOrderResponse(order)})
}

func (h *OrderHandler) transitionWithReason(
	c *gin.Context,
	op func(ctx context.Context, orderID, actorID, reason string) (*domain.Order, error),
) {
	var req actorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := op(c.Request.Context(), c.Param("id"), req.ActorID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": toOrderResponse(order)})
}

func (h *OrderHandler) ListByCustomer(c *gin.Context) {
	h.list(c, c.Param("customerID"), h.uc.GetOrdersByCustomerID)
}

func (h *OrderHandler) ListByProvider(c *gin.Context) {
	h.list(c, c.Param("providerID"), h.uc.GetOrdersByProviderID)
}

func (h *OrderHandler) list(
	c *gin.Context,
	userID string,
	op func(ctx context.Context, userID string, filter domain.OrderFilter) ([]*domain.Order, int64, error),
) {
	filter := domain.OrderFilter{
		Page:      parseInt64(c.Query("page"), 1),
		Limit:     parseInt64(c.Query("limit"), 20),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	for _, s := range c.QueryArray("status") {
		filter.Statuses = append(filter.Statuses, domain.OrderStatus(s))
	}
	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_from must be RFC3339"})
			return
		}
		filter.DateFrom = t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_to must be RFC3339"})
			return
		}
		filter.DateTo = t
	}

	orders, total, err := op(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": toOrderResponses(orders),
		"total":  total,
		"page":   filter.Page,
		"limit":  filter.Limit,
	})
}

func parseInt64(raw string, def int64) int64 {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 1 {
		return def
	}
	return v
}
