package efood

import (
	"context"
	"efood-checkout/internal/common/enum"
	"efood-checkout/internal/pkg/helper"
	"efood-checkout/internal/pkg/logger"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://fake-api-tau.vercel.app/api/efood"

type Config struct {
	BaseURL      string
	PurchasePath string
	Timeout      time.Duration
	ProxyURL     string
}

// IClient is the data-fetching layer over the efood REST API.
type IClient interface {
	ListRestaurants(ctx context.Context) ([]Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*Restaurant, error)
	GetDish(ctx context.Context, restaurantID, dishID int) (*Dish, error)
	Purchase(ctx context.Context, req *PurchaseRequest) (*PurchaseResponse, error)
}

type Client struct {
	http         *helper.HTTPClient
	baseURL      string
	purchasePath string
}

func NewClient(cfg *Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	purchasePath := cfg.PurchasePath
	if purchasePath == "" {
		purchasePath = "checkout"
	}

	return &Client{
		http: helper.NewHTTPClient(&helper.HTTPClientConfig{
			ProxyURL:       cfg.ProxyURL,
			RequestTimeout: cfg.Timeout,
		}),
		baseURL:      strings.TrimRight(baseURL, "/"),
		purchasePath: strings.Trim(purchasePath, "/"),
	}
}

func (c *Client) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	var restaurants []Restaurant
	if err := c.do(ctx, "list restaurants", enum.GET, "restaurantes", nil, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (c *Client) GetRestaurant(ctx context.Context, id int) (*Restaurant, error) {
	var restaurant Restaurant
	if err := c.do(ctx, "get restaurant", enum.GET, fmt.Sprintf("restaurantes/%d", id), nil, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// GetDish asks for the dish path first; some deployments of the API only
// serve whole restaurants, so a 404 there falls back to the restaurant menu.
func (c *Client) GetDish(ctx context.Context, restaurantID, dishID int) (*Dish, error) {
	var dish Dish
	err := c.do(ctx, "get dish", enum.GET, fmt.Sprintf("restaurantes/%d/cardapio/%d", restaurantID, dishID), nil, &dish)
	if err == nil {
		return &dish, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	restaurant, err := c.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	for i := range restaurant.Menu {
		if restaurant.Menu[i].ID == dishID {
			return &restaurant.Menu[i], nil
		}
	}

	return nil, &RequestError{Op: "get dish", StatusCode: http.StatusNotFound, Err: ErrNotFound}
}

func (c *Client) Purchase(ctx context.Context, req *PurchaseRequest) (*PurchaseResponse, error) {
	var result PurchaseResponse
	if err := c.do(ctx, "purchase", enum.POST, c.purchasePath, req, &result); err != nil {
		return nil, err
	}
	if result.OrderID == "" {
		return nil, &RequestError{Op: "purchase", Err: errors.New("response without orderId")}
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, op string, method enum.MethodEnum, path string, body, out any) error {
	resp, err := c.http.HTTPRequest(&helper.HTTPRequestPayload{
		Method: method,
		URL:    c.baseURL + "/" + path,
		Body:   body,
	}, &helper.HTTPRequestConfig{Ctx: ctx})
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}

	if resp.StatusCode == http.StatusNotFound {
		return &RequestError{Op: op, StatusCode: resp.StatusCode, Err: ErrNotFound}
	}
	if !resp.IsSuccess() {
		logger.Warning.Printf("efood %s returned %d: %s", op, resp.StatusCode, string(resp.Data))
		return &RequestError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if err := json.Unmarshal(resp.Data, out); err != nil {
		return &RequestError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}
