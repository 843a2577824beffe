package http

import (
	"github.com/LavaJover/booking-settlement-service/internal/usecase/settlement"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(uc settlement.SettlementUsecase) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	orders := NewOrderHandler(uc)
	wallets := NewWalletHandler(uc)

	api := r.Group("/api/v1")
	{
		api.POST("/orders", orders.Create)
		api.GET("/orders/:id", orders.GetByID)
		api.POST("/orders/:id/accept", orders.Accept)
		api.POST("/orders/:id/reject", orders.Reject)
		api.POST("/orders/:id/cancel", orders.Cancel)
		api.POST("/orders/:id/progress", orders.Progress)
		api.POST("/orders/:id/complete", orders.Complete)

		api.GET("/customers/:customerID/orders", orders.ListByCustomer)
		api.GET("/providers/:providerID/orders", orders.ListByProvider)

		api.GET("/wallets/:userID/statement", wallets.GetStatement)
		api.POST("/wallets/:userID/topup", wallets.Topup)
		api.POST("/wallets/:userID/withdraw", wallets.Withdraw)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
