package catalog

import (
	"context"
	types "efood-checkout/internal/common/type"
	"efood-checkout/internal/pkg/efood"
	"efood-checkout/internal/pkg/redis"
	"time"

	"github.com/shopspring/decimal"
)

const cachePrefix = "catalog:"

type Service struct {
	client   efood.IClient
	redis    redis.IRedis
	cacheTTL time.Duration
}

type IService interface {
	ListRestaurants(ctx context.Context) *types.Response
	GetRestaurant(ctx context.Context, id int) *types.Response
	GetDish(ctx context.Context, restaurantID, dishID int) *types.Response
	ResolveDish(ctx context.Context, restaurantID, dishID int) (*efood.Dish, error)
	Invalidate(ctx context.Context) error
}

// DishResolver is the slice of the catalog the cart needs.
type DishResolver interface {
	ResolveDish(ctx context.Context, restaurantID, dishID int) (*efood.Dish, error)
}

// NewService caches remote reads in rds for cacheTTL. A nil rds or a zero
// TTL disables caching.
func NewService(client efood.IClient, rds redis.IRedis, cacheTTL time.Duration) IService {
	return &Service{
		client:   client,
		redis:    rds,
		cacheTTL: cacheTTL,
	}
}

type RestaurantSummary struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Highlighted bool    `json:"highlighted"`
	Kind        string  `json:"kind"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
	Cover       string  `json:"cover"`
}

type DishView struct {
	ID           int             `json:"id"`
	RestaurantID int             `json:"restaurant_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Photo        string          `json:"photo"`
	Portion      string          `json:"portion"`
	Price        decimal.Decimal `json:"price"`
}

type RestaurantDetail struct {
	RestaurantSummary
	Menu []DishView `json:"menu"`
}
