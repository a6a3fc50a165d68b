package order

import (
	"context"
	types "efood-checkout/internal/common/type"
	database "efood-checkout/internal/pkg/db"
	"efood-checkout/internal/pkg/middleware"
	"efood-checkout/internal/pkg/rabbitmq"
	orderService "efood-checkout/internal/service/order"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx          context.Context
	rabbitmq     *rabbitmq.ConnectionManager
	orderService orderService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
	Subscribe() (*rabbitmq.Subscriber, error)
}

func NewHandler(ctx context.Context, rabbitmq *rabbitmq.ConnectionManager, orderService orderService.IService) IHandler {
	return &Handler{
		ctx:          ctx,
		rabbitmq:     rabbitmq,
		orderService: orderService,
	}
}

func (h *Handler) ListOrders(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	session, _ := middleware.GetSession(c)
	direction := database.DirectionEnum(strings.ToLower(c.Query("direction")))

	send(h.orderService.ListOrders(c.Request.Context(), session.SessionID, direction))
}

func (h *Handler) GetOrder(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	session, _ := middleware.GetSession(c)

	send(h.orderService.GetOrder(c.Request.Context(), session.SessionID, c.Param("order_id")))
}
