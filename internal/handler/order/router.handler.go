package order

import (
	"efood-checkout/internal/pkg/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	orders := e.Group("/v1/orders", middleware.AuthMiddleware())

	orders.GET("", h.ListOrders)
	orders.GET("/:order_id", h.GetOrder)
}
