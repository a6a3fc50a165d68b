package order

import (
	"context"
	"efood-checkout/internal/common/checkout"
	"efood-checkout/internal/common/models"
	types "efood-checkout/internal/common/type"
	database "efood-checkout/internal/pkg/db"
	"efood-checkout/internal/pkg/efood"
	s3aws "efood-checkout/internal/pkg/storage/s3"
	"efood-checkout/internal/repository"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	rp      repository.IRepository
	storage s3aws.Is3
}

type IService interface {
	RecordOrder(ctx context.Context, evt *checkout.OrderPlacedEvent) error
	GetOrder(ctx context.Context, sessionID, orderID string) *types.Response
	ListOrders(ctx context.Context, sessionID string, direction database.DirectionEnum) *types.Response
}

// NewService builds the order history service. storage may be nil; receipts
// are then not archived.
func NewService(rp repository.IRepository, storage s3aws.Is3) IService {
	return &Service{
		rp:      rp,
		storage: storage,
	}
}

type OrderView struct {
	OrderID    string                 `json:"order_id"`
	Items      []checkout.Item        `json:"items"`
	Delivery   efood.PurchaseDelivery `json:"delivery"`
	Total      decimal.Decimal        `json:"total"`
	PlacedAt   time.Time              `json:"placed_at"`
	ReceiptURL string                 `json:"receipt_url,omitempty"`
}

func toOrderView(o models.Order) OrderView {
	view := OrderView{
		OrderID:  o.OrderID,
		Total:    o.Total,
		PlacedAt: o.PlacedAt,
		Items:    []checkout.Item{},
	}
	_ = json.Unmarshal(o.Items, &view.Items)
	_ = json.Unmarshal(o.Delivery, &view.Delivery)
	return view
}
