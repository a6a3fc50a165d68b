package checkout

import (
	"context"
	"efood-checkout/internal/common/checkout"
	types "efood-checkout/internal/common/type"
	"efood-checkout/internal/pkg/efood"
	"efood-checkout/internal/pkg/helper"
	"efood-checkout/internal/repository"
	catalogService "efood-checkout/internal/service/catalog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// EventPublisher is satisfied by *rabbitmq.Publisher.
type EventPublisher interface {
	PublishEvent(ctx context.Context, queue, eventType string, data any) error
}

type Service struct {
	rp        repository.IRepository
	catalog   catalogService.DishResolver
	efood     efood.IClient
	publisher EventPublisher
	lockWait  time.Duration

	purchaseTimeout time.Duration
}

type IService interface {
	GetState(ctx context.Context, sessionID string) *types.Response
	AddItem(ctx context.Context, sessionID string, req *AddItemRequest) *types.Response
	RemoveItem(ctx context.Context, sessionID string, itemID int) *types.Response
	Reset(ctx context.Context, sessionID string) *types.Response

	OpenCart(ctx context.Context, sessionID string) *types.Response
	CloseCart(ctx context.Context, sessionID string) *types.Response
	OpenDelivery(ctx context.Context, sessionID string) *types.Response
	CloseDelivery(ctx context.Context, sessionID string) *types.Response
	SubmitDelivery(ctx context.Context, sessionID string, lang language.Tag, req *checkout.Delivery) *types.Response
	ClosePayment(ctx context.Context, sessionID string) *types.Response
	ConfirmPayment(ctx context.Context, sessionID string, lang language.Tag, req *checkout.Payment) *types.Response
	SubmitOrder(ctx context.Context, sessionID string) *types.Response
	CloseFinal(ctx context.Context, sessionID string) *types.Response
}

// NewService wires the checkout flow. publisher may be nil, in which case
// order events are not emitted. purchaseTimeout bounds the purchase call and
// how long a session refuses other changes while it runs.
func NewService(
	rp repository.IRepository,
	catalog catalogService.DishResolver,
	client efood.IClient,
	publisher EventPublisher,
	lockWait time.Duration,
	purchaseTimeout time.Duration,
) IService {
	if lockWait <= 0 {
		lockWait = 5 * time.Second
	}
	if purchaseTimeout <= 0 {
		purchaseTimeout = 15 * time.Second
	}
	return &Service{
		rp:              rp,
		catalog:         catalog,
		efood:           client,
		publisher:       publisher,
		lockWait:        lockWait,
		purchaseTimeout: purchaseTimeout,
	}
}

type AddItemRequest struct {
	RestaurantID int `json:"restaurant_id" binding:"required,min=1"`
	DishID       int `json:"dish_id" binding:"required,min=1"`
}

// PaymentView is the card as shown back to the shopper.
type PaymentView struct {
	CardName     string `json:"card_name"`
	CardNumber   string `json:"card_number"`
	ExpiresMonth string `json:"expires_month"`
	ExpiresYear  string `json:"expires_year"`
}

type CartView struct {
	Step     checkout.Step      `json:"step"`
	Panels   checkout.Panels    `json:"panels"`
	Items    []checkout.Item    `json:"items"`
	Total    decimal.Decimal    `json:"total"`
	Delivery *checkout.Delivery `json:"delivery,omitempty"`
	Payment  *PaymentView       `json:"payment,omitempty"`
	Order    *checkout.Order    `json:"order,omitempty"`
}

func NewCartView(s checkout.State) CartView {
	view := CartView{
		Step:     s.Step,
		Panels:   s.Panels(),
		Items:    s.Items,
		Total:    s.Total(),
		Delivery: s.Delivery,
		Order:    s.Order,
	}
	if view.Items == nil {
		view.Items = []checkout.Item{}
	}
	if s.Payment != nil {
		view.Payment = &PaymentView{
			CardName:     s.Payment.CardName,
			CardNumber:   helper.MaskString(s.Payment.CardNumber, 4),
			ExpiresMonth: s.Payment.ExpiresMonth,
			ExpiresYear:  s.Payment.ExpiresYear,
		}
	}
	return view
}
