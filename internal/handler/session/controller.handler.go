package session

import (
	"context"
	types "efood-checkout/internal/common/type"
	sessionService "efood-checkout/internal/service/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx            context.Context
	sessionService sessionService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, sessionService sessionService.IService) IHandler {
	return &Handler{
		ctx:            ctx,
		sessionService: sessionService,
	}
}

// CreateSession issues a new anonymous shopping session and its token.
func (h *Handler) CreateSession(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.sessionService.Create(c.Request.Context()))
}
