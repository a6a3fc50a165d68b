package order

import (
	"context"
	"efood-checkout/internal/common/checkout"
	"efood-checkout/internal/common/models"
	types "efood-checkout/internal/common/type"
	database "efood-checkout/internal/pkg/db"
	"efood-checkout/internal/pkg/helper"
	"efood-checkout/internal/pkg/logger"
	orderRepo "efood-checkout/internal/repository/order"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/samber/lo"
)

func receiptKey(orderID string) string {
	return fmt.Sprintf("orders/%s.json", orderID)
}

// RecordOrder stores a placed order and archives its receipt. It is safe to
// call again for an order that was already recorded.
func (s *Service) RecordOrder(ctx context.Context, evt *checkout.OrderPlacedEvent) error {
	if evt == nil || evt.OrderID == "" {
		return errors.New("order event without order id")
	}

	order := &models.Order{
		OrderID:   evt.OrderID,
		SessionID: evt.SessionID,
		Receiver:  evt.Delivery.Receiver,
		City:      evt.Delivery.Address.City,
		ZipCode:   evt.Delivery.Address.ZipCode,
		Items:     models.NewJSONB(lo.Ternary(evt.Items != nil, evt.Items, []checkout.Item{})),
		Delivery:  models.NewJSONB(evt.Delivery),
		Total:     evt.Total,
		PlacedAt:  evt.PlacedAt,
	}
	if err := s.rp.Order.Create(ctx, order); err != nil {
		return fmt.Errorf("failed to save order %s: %w", evt.OrderID, err)
	}

	if s.storage == nil {
		return nil
	}

	receipt, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode receipt: %w", err)
	}
	key := receiptKey(evt.OrderID)
	if err := s.storage.UploadFile(ctx, key, receipt, "application/json"); err != nil {
		return fmt.Errorf("failed to archive receipt for %s: %w", evt.OrderID, err)
	}
	if err := s.rp.Order.UpdateReceiptKey(ctx, evt.OrderID, key); err != nil {
		return fmt.Errorf("failed to link receipt for %s: %w", evt.OrderID, err)
	}

	logger.Info.Printf("order %s recorded for session %s", evt.OrderID, evt.SessionID)
	return nil
}

func (s *Service) GetOrder(ctx context.Context, sessionID, orderID string) *types.Response {
	order, err := s.rp.Order.FindByOrderID(ctx, orderID)
	if errors.Is(err, orderRepo.ErrOrderNotFound) || (err == nil && order.SessionID != sessionID) {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusNotFound,
			Message: "Order not found",
			Error:   orderRepo.ErrOrderNotFound,
		})
	}
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load order",
			Error:   err,
		})
	}

	view := toOrderView(*order)
	if order.ReceiptKey != "" && s.storage != nil {
		url, err := s.storage.GetPresignedURL(ctx, order.ReceiptKey)
		if err != nil {
			logger.Warning.Printf("order %s: receipt link unavailable: %v", orderID, err)
		}
		view.ReceiptURL = url
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: view,
	})
}

func (s *Service) ListOrders(ctx context.Context, sessionID string, direction database.DirectionEnum) *types.Response {
	orders, err := s.rp.Order.ListBySession(ctx, sessionID, direction.Or(database.DESC))
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to list orders",
			Error:   err,
		})
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: lo.Map(orders, func(o models.Order, _ int) OrderView { return toOrderView(o) }),
	})
}
