package checkout

import (
	"efood-checkout/internal/pkg/efood"
	"time"

	"github.com/shopspring/decimal"
)

const (
	QueueOrderPlaced = "efood.order.placed"
	EventOrderPlaced = "order.placed"
)

// OrderPlacedEvent is published once a purchase succeeds.
type OrderPlacedEvent struct {
	OrderID   string                 `json:"order_id"`
	SessionID string                 `json:"session_id"`
	Items     []Item                 `json:"items"`
	Delivery  efood.PurchaseDelivery `json:"delivery"`
	Total     decimal.Decimal        `json:"total"`
	PlacedAt  time.Time              `json:"placed_at"`
}

func NewOrderPlacedEvent(sessionID string, s State, placedAt time.Time) OrderPlacedEvent {
	evt := OrderPlacedEvent{
		SessionID: sessionID,
		Items:     s.Items,
		Total:     s.Total(),
		PlacedAt:  placedAt,
	}
	if s.Order != nil {
		evt.OrderID = s.Order.ID
		evt.Delivery = s.Order.Delivery
	}
	return evt
}
