package checkout

import (
	"context"
	"efood-checkout/internal/common/checkout"
	types "efood-checkout/internal/common/type"
	"efood-checkout/internal/pkg/helper"
	"efood-checkout/internal/pkg/logger"
	"net/http"
	"time"
)

func (s *Service) GetState(ctx context.Context, sessionID string) *types.Response {
	state, err := s.rp.Session.Load(ctx, sessionID)
	if err != nil {
		return failure(err)
	}
	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: NewCartView(state),
	})
}

// AddItem resolves the dish through the catalog so the price comes from the
// remote API, never from the client.
func (s *Service) AddItem(ctx context.Context, sessionID string, req *AddItemRequest) *types.Response {
	dish, err := s.catalog.ResolveDish(ctx, req.RestaurantID, req.DishID)
	if err != nil {
		return failure(err)
	}
	item := checkout.ItemFromDish(req.RestaurantID, *dish)

	res := s.apply(ctx, sessionID, func(state checkout.State) (checkout.State, error) {
		next, result := checkout.AddItem(state, item)
		if result == checkout.Duplicate {
			return state, errDuplicateItem
		}
		return next, nil
	})
	if res.Code == http.StatusOK {
		res.Message = "Item added"
		logger.Debug.Printf("session %s: added dish %d", sessionID, item.ID)
	}
	return res
}

func (s *Service) RemoveItem(ctx context.Context, sessionID string, itemID int) *types.Response {
	return s.apply(ctx, sessionID, func(state checkout.State) (checkout.State, error) {
		return checkout.RemoveItem(state, itemID), nil
	})
}

func (s *Service) Reset(ctx context.Context, sessionID string) *types.Response {
	release, err := s.lockSession(ctx, sessionID)
	if err != nil {
		return failure(err)
	}
	defer release()

	if current, err := s.rp.Session.Load(ctx, sessionID); err == nil && current.IsSubmitting(time.Now()) {
		return failure(checkout.ErrOrderInProgress)
	}

	state := checkout.Reset()
	if err := s.rp.Session.Save(ctx, sessionID, state); err != nil {
		return failure(err)
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: NewCartView(state),
	})
}

func (s *Service) OpenCart(ctx context.Context, sessionID string) *types.Response {
	return s.apply(ctx, sessionID, checkout.OpenCart)
}

func (s *Service) CloseCart(ctx context.Context, sessionID string) *types.Response {
	return s.apply(ctx, sessionID, checkout.CloseCart)
}
