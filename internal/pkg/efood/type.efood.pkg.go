package efood

import (
	"github.com/shopspring/decimal"
)

func init() {
	// the efood API reads and writes prices as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// Restaurant is a catalog entry as served by GET /restaurantes.
type Restaurant struct {
	ID          int     `json:"id"`
	Title       string  `json:"titulo"`
	Highlighted bool    `json:"destacado"`
	Kind        string  `json:"tipo"`
	Rating      float64 `json:"avaliacao"`
	Description string  `json:"descricao"`
	Cover       string  `json:"capa"`
	Menu        []Dish  `json:"cardapio"`
}

// Dish is one entry of a restaurant's cardapio.
type Dish struct {
	ID          int             `json:"id"`
	Name        string          `json:"nome"`
	Description string          `json:"descricao"`
	Photo       string          `json:"foto"`
	Portion     string          `json:"porcao"`
	Price       decimal.Decimal `json:"preco"`
}

type PurchaseAddress struct {
	Description string `json:"description"`
	City        string `json:"city"`
	ZipCode     string `json:"zipCode"`
	Number      int    `json:"number"`
	Complement  string `json:"complement"`
}

type PurchaseDelivery struct {
	Receiver string          `json:"receiver"`
	Address  PurchaseAddress `json:"address"`
}

type PurchaseProduct struct {
	ID    int             `json:"id"`
	Price decimal.Decimal `json:"price"`
}

type CardExpires struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

type Card struct {
	Name    string      `json:"name"`
	Number  string      `json:"number"`
	Code    int         `json:"code"`
	Expires CardExpires `json:"expires"`
}

type PurchasePayment struct {
	Card Card `json:"card"`
}

// PurchaseRequest is the body of the purchase mutation.
type PurchaseRequest struct {
	Delivery PurchaseDelivery  `json:"delivery"`
	Products []PurchaseProduct `json:"products"`
	Payment  PurchasePayment   `json:"payment"`
}

// PurchaseResponse carries the order id and the delivery echo. Delivery is
// nil when the remote service omits it.
type PurchaseResponse struct {
	OrderID  string            `json:"orderId"`
	Delivery *PurchaseDelivery `json:"delivery,omitempty"`
}
