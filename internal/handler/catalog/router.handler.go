package catalog

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	restaurants := e.Group("/v1/restaurants")

	restaurants.GET("", h.ListRestaurants)
	restaurants.GET("/:id", h.GetRestaurant)
	restaurants.GET("/:id/menu/:dish_id", h.GetDish)
}
