package efood_test

import (
	"context"
	"efood-checkout/internal/pkg/efood"
	"efood-checkout/internal/pkg/efood/efoodtest"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(srv *efoodtest.Server) *efood.Client {
	return efood.NewClient(&efood.Config{BaseURL: srv.URL})
}

func TestClient_ListRestaurants(t *testing.T) {
	srv := efoodtest.NewServer(t)

	restaurants, err := newClient(srv).ListRestaurants(context.Background())
	require.NoError(t, err)
	require.Len(t, restaurants, 2)
	assert.Equal(t, "Hioki Sushi", restaurants[0].Title)
	assert.Equal(t, "60.9", restaurants[0].Menu[0].Price.String())
}

func TestClient_GetRestaurant_NotFound(t *testing.T) {
	srv := efoodtest.NewServer(t)

	_, err := newClient(srv).GetRestaurant(context.Background(), 99)
	assert.ErrorIs(t, err, efood.ErrNotFound)
	assert.ErrorIs(t, err, efood.ErrRequest)
}

func TestClient_GetDish_FallsBackToMenu(t *testing.T) {
	srv := efoodtest.NewServer(t)

	dish, err := newClient(srv).GetDish(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "Temaki", dish.Name)
	assert.Equal(t, 1, srv.Calls("restaurantes/1/cardapio/2"))
	assert.Equal(t, 1, srv.Calls("restaurantes/1"))
}

func TestClient_GetDish_DirectPath(t *testing.T) {
	srv := efoodtest.NewServer(t)
	srv.ServeDishPath = true

	dish, err := newClient(srv).GetDish(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "60.9", dish.Price.String())
	assert.Equal(t, 0, srv.Calls("restaurantes/1"))
}

func TestClient_GetDish_UnknownDish(t *testing.T) {
	srv := efoodtest.NewServer(t)

	_, err := newClient(srv).GetDish(context.Background(), 1, 999)
	assert.ErrorIs(t, err, efood.ErrNotFound)
}

func TestClient_Purchase(t *testing.T) {
	srv := efoodtest.NewServer(t)

	res, err := newClient(srv).Purchase(context.Background(), &efood.PurchaseRequest{
		Products: []efood.PurchaseProduct{{ID: 1, Price: decimal.RequireFromString("60.9")}},
	})
	require.NoError(t, err)
	assert.Equal(t, efoodtest.OrderID, res.OrderID)

	purchases := srv.Purchases()
	require.Len(t, purchases, 1)
	assert.Equal(t, "60.9", purchases[0].Products[0].Price.String())
}

func TestClient_Purchase_ServerError(t *testing.T) {
	srv := efoodtest.NewServer(t)
	srv.FailPurchases(true)

	_, err := newClient(srv).Purchase(context.Background(), &efood.PurchaseRequest{})

	var reqErr *efood.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	assert.Equal(t, "purchase", reqErr.Op)
}

func TestPurchaseProduct_PriceIsJSONNumber(t *testing.T) {
	data, err := json.Marshal(efood.PurchaseProduct{ID: 1, Price: decimal.RequireFromString("60.90")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"price":60.9}`, string(data))

	var dish efood.Dish
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"preco":32.5}`), &dish))
	assert.Equal(t, "32.5", dish.Price.String())
}
