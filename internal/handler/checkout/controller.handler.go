package checkout

import (
	"context"
	"efood-checkout/internal/common/checkout"
	types "efood-checkout/internal/common/type"
	"efood-checkout/internal/pkg/helper"
	"efood-checkout/internal/pkg/middleware"
	"efood-checkout/internal/pkg/validation"
	checkoutService "efood-checkout/internal/service/checkout"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx             context.Context
	checkoutService checkoutService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, checkoutService checkoutService.IService) IHandler {
	return &Handler{
		ctx:             ctx,
		checkoutService: checkoutService,
	}
}

func sessionID(c *gin.Context) string {
	session, _ := middleware.GetSession(c)
	return session.SessionID
}

// bindJSON decodes the body into req. Validation failures become a 422 with
// per-field messages, anything else a 400.
func bindJSON(c *gin.Context, req any) *types.Response {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}

	err = validation.FromBindingError(middleware.GetLanguage(c), err)
	var fieldErrs types.FieldErrors
	if errors.As(err, &fieldErrs) {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusUnprocessableEntity,
			Message: "Validation failed",
			Error:   err,
		})
	}
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
		Error:   err,
	})
}

func (h *Handler) GetCart(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.checkoutService.GetState(c.Request.Context(), sessionID(c)))
}

func (h *Handler) AddItem(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req checkoutService.AddItemRequest
	if res := bindJSON(c, &req); res != nil {
		send(res)
		return
	}

	send(h.checkoutService.AddItem(c.Request.Context(), sessionID(c), &req))
}

func (h *Handler) RemoveItem(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	itemID, err := helper.StringToInt(c.Param("id"))
	if err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "id must be an integer",
			Error:   err,
		}))
		return
	}

	send(h.checkoutService.RemoveItem(c.Request.Context(), sessionID(c), itemID))
}

func (h *Handler) ResetCart(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.checkoutService.Reset(c.Request.Context(), sessionID(c)))
}

func (h *Handler) OpenCart(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.checkoutService.OpenCart(c.Request.Context(), sessionID(c)))
}

func (h *Handler) CloseCart(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.checkoutService.CloseCart(c.Request.Context(), sessionID(c)))
}

func (h *Handler) OpenDelivery(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.checkoutService.OpenDelivery(c.Request.Context(), sessionID(c)))
}

func (h *Handler) CloseDelivery(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.checkoutService.CloseDelivery(c.Request.Context(), sessionID(c)))
}

func (h *Handler) SubmitDelivery(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req checkout.Delivery
	if res := bindJSON(c, &req); res != nil {
		send(res)
		return
	}

	send(h.checkoutService.SubmitDelivery(c.Request.Context(), sessionID(c), middleware.GetLanguage(c), &req))
}

func (h *Handler) ClosePayment(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.checkoutService.ClosePayment(c.Request.Context(), sessionID(c)))
}

func (h *Handler) ConfirmPayment(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req checkout.Payment
	if res := bindJSON(c, &req); res != nil {
		send(res)
		return
	}

	send(h.checkoutService.ConfirmPayment(c.Request.Context(), sessionID(c), middleware.GetLanguage(c), &req))
}

func (h *Handler) SubmitOrder(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.checkoutService.SubmitOrder(c.Request.Context(), sessionID(c)))
}

func (h *Handler) CloseFinal(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.checkoutService.CloseFinal(c.Request.Context(), sessionID(c)))
}
