package order

import (
	"context"
	"efood-checkout/internal/common/checkout"
	"efood-checkout/internal/pkg/logger"
	"efood-checkout/internal/pkg/rabbitmq"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Subscribe starts consuming order.placed events into the order history.
// The returned subscriber must be stopped on shutdown.
func (h *Handler) Subscribe() (*rabbitmq.Subscriber, error) {
	sub, err := rabbitmq.NewSubscriber(h.ctx, h.rabbitmq, h.HandleOrderPlaced, rabbitmq.DefaultSubscribeOptions(checkout.QueueOrderPlaced))
	if err != nil {
		return nil, err
	}
	if err := sub.Start(); err != nil {
		return nil, err
	}
	return sub, nil
}

// HandleOrderPlaced records one delivery. Returning an error sends the
// message through the subscriber's retry and dead letter path.
func (h *Handler) HandleOrderPlaced(ctx context.Context, msg *amqp.Delivery) error {
	evt, data, err := rabbitmq.DecodeEvent[checkout.OrderPlacedEvent](msg.Body)
	if err != nil {
		return err
	}
	if evt.Type != checkout.EventOrderPlaced {
		logger.Warning.Printf("skipping %s event on %s", evt.Type, checkout.QueueOrderPlaced)
		return nil
	}

	if err := h.orderService.RecordOrder(ctx, data); err != nil {
		return fmt.Errorf("event %s: %w", evt.ID, err)
	}
	return nil
}
