package checkout

import (
	"time"

	"github.com/samber/lo"
)

// AddResult tells the caller whether an add changed the cart.
type AddResult int

const (
	Added AddResult = iota
	Duplicate
)

func (r AddResult) String() string {
	switch r {
	case Added:
		return "added"
	case Duplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Operation names, used in TransitionError and logs.
const (
	OpOpenCart       = "open cart"
	OpCloseCart      = "close cart"
	OpOpenDelivery   = "open delivery"
	OpCloseDelivery  = "close delivery"
	OpSubmitDelivery = "submit delivery"
	OpClosePayment   = "close payment"
	OpConfirmPayment = "confirm payment"
	OpSubmitOrder    = "submit order"
	OpCompleteOrder  = "complete order"
	OpCloseFinal     = "close final"
)

var transitions = map[string]map[Step]Step{
	OpOpenCart:       {StepBrowsing: StepCart, StepCart: StepCart},
	OpCloseCart:      {StepCart: StepBrowsing},
	OpOpenDelivery:   {StepCart: StepDelivery},
	OpCloseDelivery:  {StepDelivery: StepCart},
	OpSubmitDelivery: {StepDelivery: StepPayment},
	OpClosePayment:   {StepPayment: StepDelivery},
	OpConfirmPayment: {StepPayment: StepFinal},
	OpSubmitOrder:    {StepFinal: StepFinal},
	OpCompleteOrder:  {StepFinal: StepConfirmed},
	OpCloseFinal:     {StepFinal: StepBrowsing, StepConfirmed: StepBrowsing},
}

// CanApply reports whether op is allowed from the given step.
func CanApply(op string, from Step) bool {
	_, ok := transitions[op][from]
	return ok
}

func move(s State, op string) (State, error) {
	to, ok := transitions[op][s.Step]
	if !ok {
		return s, invalidMove(op, s.Step)
	}
	next := s.clone()
	next.Step = to
	return next, nil
}

// AddItem appends item unless an item with the same ID is already present.
func AddItem(s State, item Item) (State, AddResult) {
	if s.HasItem(item.ID) {
		return s, Duplicate
	}
	next := s.clone()
	next.Items = append(next.Items, item)
	return next, Added
}

// RemoveItem drops the item with the given ID; an absent ID is a no-op.
func RemoveItem(s State, id int) State {
	if !s.HasItem(id) {
		return s
	}
	next := s.clone()
	next.Items = lo.Reject(next.Items, func(item Item, _ int) bool { return item.ID == id })
	return next
}

func OpenCart(s State) (State, error) {
	return move(s, OpOpenCart)
}

func CloseCart(s State) (State, error) {
	return move(s, OpCloseCart)
}

func OpenDelivery(s State) (State, error) {
	if len(s.Items) == 0 && s.Step == StepCart {
		return s, &TransitionError{Op: OpOpenDelivery, From: s.Step, Err: ErrCartEmpty}
	}
	return move(s, OpOpenDelivery)
}

func CloseDelivery(s State) (State, error) {
	return move(s, OpCloseDelivery)
}

// SetDelivery replaces the delivery data wholesale.
func SetDelivery(s State, data Delivery) State {
	next := s.clone()
	next.Delivery = &data
	return next
}

// SubmitDelivery stores already validated delivery data and opens payment.
func SubmitDelivery(s State, data Delivery) (State, error) {
	next, err := move(s, OpSubmitDelivery)
	if err != nil {
		return s, err
	}
	return SetDelivery(next, data), nil
}

func ClosePayment(s State) (State, error) {
	return move(s, OpClosePayment)
}

// ConfirmPayment stores already validated card data and opens the final
// panel.
func ConfirmPayment(s State, data Payment) (State, error) {
	next, err := move(s, OpConfirmPayment)
	if err != nil {
		return s, err
	}
	next.Payment = &data
	return next, nil
}

// BeginSubmit marks the final step as waiting on a purchase until the given
// deadline.
func BeginSubmit(s State, until time.Time) (State, error) {
	if !CanApply(OpSubmitOrder, s.Step) {
		return s, invalidMove(OpSubmitOrder, s.Step)
	}
	next := s.clone()
	next.SubmittingUntil = &until
	return next, nil
}

// EndSubmit clears the in-flight marker after a failed purchase.
func EndSubmit(s State) State {
	next := s.clone()
	next.SubmittingUntil = nil
	return next
}

// CompleteOrder records a successful purchase. The card data is dropped once
// the order exists.
func CompleteOrder(s State, order Order) (State, error) {
	next, err := move(s, OpCompleteOrder)
	if err != nil {
		return s, err
	}
	next.Order = &order
	next.Payment = nil
	next.SubmittingUntil = nil
	return next, nil
}

// CloseFinal hides the final panel. Closing after a confirmed order clears
// the order and the checkout data; the cart items stay.
func CloseFinal(s State) (State, error) {
	wasConfirmed := s.Step == StepConfirmed
	next, err := move(s, OpCloseFinal)
	if err != nil {
		return s, err
	}
	if wasConfirmed {
		next.Order = nil
		next.Delivery = nil
		next.Payment = nil
	}
	return next, nil
}

// Reset is the explicit equivalent of reloading the storefront.
func Reset() State {
	return NewState()
}
