package catalog

import (
	"context"
	types "efood-checkout/internal/common/type"
	"efood-checkout/internal/pkg/efood"
	"efood-checkout/internal/pkg/helper"
	"efood-checkout/internal/pkg/logger"
	"errors"
	"fmt"
	"net/http"

	"github.com/samber/lo"
)

func (s *Service) ListRestaurants(ctx context.Context) *types.Response {
	restaurants, err := cached(ctx, s, cachePrefix+"restaurants", func() ([]efood.Restaurant, error) {
		return s.client.ListRestaurants(ctx)
	})
	if err != nil {
		return remoteFailure(err, "Failed to load restaurants")
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: lo.Map(restaurants, func(r efood.Restaurant, _ int) RestaurantSummary {
			return toSummary(r)
		}),
	})
}

func (s *Service) GetRestaurant(ctx context.Context, id int) *types.Response {
	restaurant, err := s.restaurant(ctx, id)
	if err != nil {
		return remoteFailure(err, "Failed to load restaurant")
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: RestaurantDetail{
			RestaurantSummary: toSummary(*restaurant),
			Menu: lo.Map(restaurant.Menu, func(d efood.Dish, _ int) DishView {
				return toDishView(restaurant.ID, d)
			}),
		},
	})
}

func (s *Service) GetDish(ctx context.Context, restaurantID, dishID int) *types.Response {
	dish, err := s.ResolveDish(ctx, restaurantID, dishID)
	if err != nil {
		return remoteFailure(err, "Failed to load dish")
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: toDishView(restaurantID, *dish),
	})
}

// ResolveDish finds a dish, preferring the cached restaurant menu over a
// remote call.
func (s *Service) ResolveDish(ctx context.Context, restaurantID, dishID int) (*efood.Dish, error) {
	key := fmt.Sprintf("%srestaurant:%d", cachePrefix, restaurantID)
	if restaurant, ok := lookup[efood.Restaurant](ctx, s, key); ok {
		if dish, found := lo.Find(restaurant.Menu, func(d efood.Dish) bool { return d.ID == dishID }); found {
			return &dish, nil
		}
	}

	return cached(ctx, s, fmt.Sprintf("%sdish:%d:%d", cachePrefix, restaurantID, dishID), func() (*efood.Dish, error) {
		return s.client.GetDish(ctx, restaurantID, dishID)
	})
}

// Invalidate drops every cached catalog entry.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.DelByPrefix(ctx, cachePrefix)
}

func (s *Service) restaurant(ctx context.Context, id int) (*efood.Restaurant, error) {
	return cached(ctx, s, fmt.Sprintf("%srestaurant:%d", cachePrefix, id), func() (*efood.Restaurant, error) {
		return s.client.GetRestaurant(ctx, id)
	})
}

func (s *Service) cacheEnabled() bool {
	return s.redis != nil && s.cacheTTL > 0
}

func lookup[T any](ctx context.Context, s *Service, key string) (*T, bool) {
	if !s.cacheEnabled() {
		return nil, false
	}
	raw, err := s.redis.Get(ctx, key)
	if err != nil {
		logger.Warning.Printf("catalog cache read %s: %v", key, err)
		return nil, false
	}
	if raw == "" {
		return nil, false
	}
	v, err := helper.ByteToStruct[T]([]byte(raw))
	if err != nil {
		logger.Warning.Printf("catalog cache decode %s: %v", key, err)
		return nil, false
	}
	return v, true
}

// cached serves key from redis or calls fetch and stores its result.
// Cache failures only cost a remote call.
func cached[T any](ctx context.Context, s *Service, key string, fetch func() (T, error)) (T, error) {
	if v, ok := lookup[T](ctx, s, key); ok {
		return *v, nil
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}

	if s.cacheEnabled() {
		if err := s.redis.Set(ctx, key, v, s.cacheTTL); err != nil {
			logger.Warning.Printf("catalog cache write %s: %v", key, err)
		}
	}
	return v, nil
}

func remoteFailure(err error, message string) *types.Response {
	if errors.Is(err, efood.ErrNotFound) {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusNotFound,
			Message: "Not found",
			Error:   err,
		})
	}
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusBadGateway,
		Message: message,
		Error:   err,
	})
}

func toSummary(r efood.Restaurant) RestaurantSummary {
	return RestaurantSummary{
		ID:          r.ID,
		Title:       r.Title,
		Highlighted: r.Highlighted,
		Kind:        r.Kind,
		Rating:      r.Rating,
		Description: r.Description,
		Cover:       r.Cover,
	}
}

func toDishView(restaurantID int, d efood.Dish) DishView {
	return DishView{
		ID:           d.ID,
		RestaurantID: restaurantID,
		Name:         d.Name,
		Description:  d.Description,
		Photo:        d.Photo,
		Portion:      d.Portion,
		Price:        d.Price,
	}
}
