package checkout

import (
	"efood-checkout/internal/pkg/efood"
	"efood-checkout/internal/pkg/helper"

	"github.com/samber/lo"
)

// PlaceholderCard is sent when a state reaches the final step without card
// data.
var PlaceholderCard = efood.Card{
	Name:    "Teste",
	Number:  "1111222233334444",
	Code:    123,
	Expires: efood.CardExpires{Month: 12, Year: 2030},
}

const defaultComplement = "N/A"

// BuildPurchase assembles the purchase mutation body from the state.
func BuildPurchase(s State) (*efood.PurchaseRequest, error) {
	if s.Delivery == nil {
		return nil, &TransitionError{Op: OpSubmitOrder, From: s.Step, Err: ErrDeliveryMissing}
	}
	if len(s.Items) == 0 {
		return nil, &TransitionError{Op: OpSubmitOrder, From: s.Step, Err: ErrCartEmpty}
	}

	return &efood.PurchaseRequest{
		Delivery: DeliveryToPurchase(*s.Delivery),
		Products: lo.Map(s.Items, func(item Item, _ int) efood.PurchaseProduct {
			return efood.PurchaseProduct{ID: item.ID, Price: item.Price}
		}),
		Payment: efood.PurchasePayment{Card: PaymentToCard(s.Payment)},
	}, nil
}

// DeliveryToPurchase nests the flat form into the remote address object.
func DeliveryToPurchase(d Delivery) efood.PurchaseDelivery {
	return efood.PurchaseDelivery{
		Receiver: d.Receiver,
		Address: efood.PurchaseAddress{
			Description: d.Address,
			City:        d.City,
			ZipCode:     d.ZipCode,
			Number:      helper.StringToIntOrZero(d.Number),
			Complement:  lo.Ternary(d.Complement != "", d.Complement, defaultComplement),
		},
	}
}

// PaymentToCard converts captured card fields, falling back to the
// placeholder card when none were captured.
func PaymentToCard(p *Payment) efood.Card {
	if p == nil {
		return PlaceholderCard
	}
	return efood.Card{
		Name:   p.CardName,
		Number: helper.DigitsOnly(p.CardNumber),
		Code:   helper.StringToIntOrZero(p.CardCode),
		Expires: efood.CardExpires{
			Month: helper.StringToIntOrZero(p.ExpiresMonth),
			Year:  helper.StringToIntOrZero(p.ExpiresYear),
		},
	}
}

// ItemFromDish builds a cart item from a catalog dish.
func ItemFromDish(restaurantID int, dish efood.Dish) Item {
	return Item{
		ID:           dish.ID,
		RestaurantID: restaurantID,
		Name:         dish.Name,
		Description:  dish.Description,
		Photo:        dish.Photo,
		Portion:      dish.Portion,
		Price:        dish.Price,
	}
}
