package checkout

import (
	"context"
	"efood-checkout/internal/common/checkout"
	types "efood-checkout/internal/common/type"
	"efood-checkout/internal/pkg/efood"
	"efood-checkout/internal/pkg/helper"
	"efood-checkout/internal/pkg/logger"
	"efood-checkout/internal/pkg/redis"
	sessionRepo "efood-checkout/internal/repository/session"
	"errors"
	"net/http"
	"time"
)

var errDuplicateItem = errors.New("item already in cart")

type transform func(checkout.State) (checkout.State, error)

// lockSession serializes writers of one session. The returned release must
// be called once the state has been saved.
func (s *Service) lockSession(ctx context.Context, sessionID string) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	lock, err := s.rp.Session.Lock(lockCtx, sessionID)
	if err != nil {
		return nil, err
	}

	return func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			logger.Warning.Printf("session %s: %v", sessionID, err)
		}
	}, nil
}

// apply runs fn on the session state under the session lock and saves the
// result. Nothing is saved when fn fails.
func (s *Service) apply(ctx context.Context, sessionID string, fn transform) *types.Response {
	release, err := s.lockSession(ctx, sessionID)
	if err != nil {
		return failure(err)
	}
	defer release()

	state, err := s.rp.Session.Load(ctx, sessionID)
	if err != nil {
		return failure(err)
	}
	if state.IsSubmitting(time.Now()) {
		return failure(checkout.ErrOrderInProgress)
	}

	next, err := fn(state)
	if err != nil {
		return failure(err)
	}

	if err := s.rp.Session.Save(context.WithoutCancel(ctx), sessionID, next); err != nil {
		return failure(err)
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: NewCartView(next),
	})
}

func failure(err error) *types.Response {
	var fieldErrs types.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		return helper.ParseResponse(&types.Response{Code: http.StatusUnprocessableEntity, Message: "Validation failed", Error: err})
	case errors.Is(err, errDuplicateItem):
		return helper.ParseResponse(&types.Response{Code: http.StatusConflict, Message: checkout.MsgDuplicateItem, Error: err})
	case errors.Is(err, checkout.ErrDeliveryMissing):
		return helper.ParseResponse(&types.Response{Code: http.StatusPreconditionFailed, Message: checkout.MsgDeliveryAbsent, Error: err})
	case errors.Is(err, checkout.ErrOrderInProgress):
		return helper.ParseResponse(&types.Response{Code: http.StatusConflict, Message: checkout.MsgOrderPending, Error: err})
	case errors.Is(err, checkout.ErrInvalidTransition):
		return helper.ParseResponse(&types.Response{Code: http.StatusConflict, Message: "Invalid checkout step", Error: err})
	case errors.Is(err, sessionRepo.ErrSessionNotFound):
		return helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "Session expired", Error: err})
	case errors.Is(err, redis.ErrLockNotAcquired):
		return helper.ParseResponse(&types.Response{Code: http.StatusConflict, Message: "Session is busy", Error: err})
	case errors.Is(err, efood.ErrNotFound):
		return helper.ParseResponse(&types.Response{Code: http.StatusNotFound, Message: "Dish not found", Error: err})
	case errors.Is(err, efood.ErrRequest):
		return helper.ParseResponse(&types.Response{Code: http.StatusBadGateway, Message: "Catalog unavailable", Error: err})
	}
	return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Error: err})
}
