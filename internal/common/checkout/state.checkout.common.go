// Package checkout holds the cart and checkout wizard state and the pure
// transitions over it. Nothing here performs I/O; services load a State,
// apply a transition and persist the result.
package checkout

import (
	"efood-checkout/internal/pkg/efood"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Step is the single tag that replaces the cart/delivery/payment/final
// visibility flags.
type Step string

const (
	StepBrowsing  Step = "browsing"
	StepCart      Step = "cart"
	StepDelivery  Step = "delivery"
	StepPayment   Step = "payment"
	StepFinal     Step = "final"
	StepConfirmed Step = "confirmed"
)

func (s Step) String() string {
	return string(s)
}

func (s Step) IsValid() bool {
	switch s {
	case StepBrowsing, StepCart, StepDelivery, StepPayment, StepFinal, StepConfirmed:
		return true
	}
	return false
}

// Item is a dish placed in the cart. Items are never mutated after being
// added and are unique by ID.
type Item struct {
	ID           int             `json:"id"`
	RestaurantID int             `json:"restaurant_id,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Photo        string          `json:"photo,omitempty"`
	Portion      string          `json:"portion,omitempty"`
	Price        decimal.Decimal `json:"price"`
}

type Delivery struct {
	Receiver   string `json:"receiver" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	ZipCode    string `json:"zip_code" validate:"required,min=9,max=9,zipcode"`
	Number     string `json:"number" validate:"required,numeric"`
	Complement string `json:"complement"`
}

type Payment struct {
	CardName     string `json:"card_name" validate:"required"`
	CardNumber   string `json:"card_number" validate:"required,min=19,max=19,cardnumber"`
	CardCode     string `json:"card_code" validate:"required,min=3,max=3,numeric"`
	ExpiresMonth string `json:"expires_month" validate:"required,min=2,max=2,numeric"`
	ExpiresYear  string `json:"expires_year" validate:"required,min=4,max=4,numeric"`
}

// Order is the purchase result kept once the final step succeeds.
type Order struct {
	ID       string                 `json:"order_id"`
	Delivery efood.PurchaseDelivery `json:"delivery"`
}

type State struct {
	Items    []Item    `json:"items"`
	Step     Step      `json:"step"`
	Delivery *Delivery `json:"delivery,omitempty"`
	Payment  *Payment  `json:"payment,omitempty"`
	Order    *Order    `json:"order,omitempty"`

	// SubmittingUntil is set while a purchase is in flight.
	SubmittingUntil *time.Time `json:"submitting_until,omitempty"`
}

// Panels are the legacy visibility flags, derived from Step. At most one of
// them is ever true.
type Panels struct {
	Cart     bool `json:"is_open"`
	Delivery bool `json:"is_open_delivery"`
	Payment  bool `json:"is_open_delivery_end"`
	Final    bool `json:"is_final_project_open"`
}

// NewState returns the empty browsing state a session starts with.
func NewState() State {
	return State{Items: []Item{}, Step: StepBrowsing}
}

func (s State) Panels() Panels {
	return Panels{
		Cart:     s.Step == StepCart,
		Delivery: s.Step == StepDelivery,
		Payment:  s.Step == StepPayment,
		Final:    s.Step == StepFinal || s.Step == StepConfirmed,
	}
}

func (s State) HasItem(id int) bool {
	return lo.ContainsBy(s.Items, func(item Item) bool { return item.ID == id })
}

func (s State) Total() decimal.Decimal {
	return lo.Reduce(s.Items, func(sum decimal.Decimal, item Item, _ int) decimal.Decimal {
		return sum.Add(item.Price)
	}, decimal.Zero)
}

func (s State) IsConfirmed() bool {
	return s.Step == StepConfirmed && s.Order != nil
}

// IsSubmitting reports whether a purchase started before now may still be
// running.
func (s State) IsSubmitting(now time.Time) bool {
	return s.SubmittingUntil != nil && now.Before(*s.SubmittingUntil)
}

// clone copies the item slice so transitions never alias the caller's state.
func (s State) clone() State {
	next := s
	next.Items = append(make([]Item, 0, len(s.Items)+1), s.Items...)
	return next
}
