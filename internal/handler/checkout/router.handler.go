package checkout

import (
	"efood-checkout/internal/pkg/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	cart := e.Group("/v1/cart", middleware.AuthMiddleware())

	cart.GET("", h.GetCart)
	cart.DELETE("", h.ResetCart)
	cart.POST("/items", h.AddItem)
	cart.DELETE("/items/:id", h.RemoveItem)
	cart.POST("/open", h.OpenCart)
	cart.POST("/close", h.CloseCart)

	wizard := e.Group("/v1/checkout", middleware.AuthMiddleware())

	wizard.POST("/delivery/open", h.OpenDelivery)
	wizard.POST("/delivery/close", h.CloseDelivery)
	wizard.POST("/delivery", h.SubmitDelivery)
	wizard.POST("/payment/close", h.ClosePayment)
	wizard.POST("/payment", h.ConfirmPayment)
	wizard.POST("/submit", h.SubmitOrder)
	wizard.POST("/close", h.CloseFinal)
}
