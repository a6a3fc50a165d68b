package catalog

import (
	"context"
	types "efood-checkout/internal/common/type"
	"efood-checkout/internal/pkg/helper"
	catalogService "efood-checkout/internal/service/catalog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx            context.Context
	catalogService catalogService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, catalogService catalogService.IService) IHandler {
	return &Handler{
		ctx:            ctx,
		catalogService: catalogService,
	}
}

func (h *Handler) ListRestaurants(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.catalogService.ListRestaurants(c.Request.Context()))
}

func (h *Handler) GetRestaurant(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	id, err := helper.StringToInt(c.Param("id"))
	if err != nil || id < 1 {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "id must be a positive integer",
		}))
		return
	}

	send(h.catalogService.GetRestaurant(c.Request.Context(), id))
}

func (h *Handler) GetDish(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	id, err := helper.StringToInt(c.Param("id"))
	if err != nil || id < 1 {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "id must be a positive integer",
		}))
		return
	}
	dishID, err := helper.StringToInt(c.Param("dish_id"))
	if err != nil || dishID < 1 {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "dish_id must be a positive integer",
		}))
		return
	}

	send(h.catalogService.GetDish(c.Request.Context(), id, dishID))
}
