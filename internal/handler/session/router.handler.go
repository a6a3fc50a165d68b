package session

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	sessions := e.Group("/v1/sessions")

	sessions.POST("", h.CreateSession)
}
