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

// submitGrace covers saving the result after the purchase deadline.
const submitGrace = 5 * time.Second

// SubmitOrder places the purchase for the final step. A session that already
// holds an order gets it back without a second purchase. While a purchase is
// in flight the session is marked and every other change is refused, even
// after the session lock has expired.
func (s *Service) SubmitOrder(ctx context.Context, sessionID string) *types.Response {
	release, err := s.lockSession(ctx, sessionID)
	if err != nil {
		return failure(err)
	}
	defer release()

	state, err := s.rp.Session.Load(ctx, sessionID)
	if err != nil {
		return failure(err)
	}

	if state.IsConfirmed() {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusOK,
			Message: "Order already placed",
			Data:    NewCartView(state),
		})
	}

	if state.IsSubmitting(time.Now()) {
		return failure(checkout.ErrOrderInProgress)
	}

	if !checkout.CanApply(checkout.OpSubmitOrder, state.Step) {
		return failure(&checkout.TransitionError{Op: checkout.OpSubmitOrder, From: state.Step})
	}

	req, err := checkout.BuildPurchase(state)
	if err != nil {
		return failure(err)
	}

	marked, err := checkout.BeginSubmit(state, time.Now().Add(s.purchaseTimeout+submitGrace))
	if err != nil {
		return failure(err)
	}
	if err := s.rp.Session.Save(ctx, sessionID, marked); err != nil {
		return failure(err)
	}

	// the purchase may have happened; finish even if the client went away
	saveCtx := context.WithoutCancel(ctx)

	purchaseCtx, cancel := context.WithTimeout(ctx, s.purchaseTimeout)
	defer cancel()

	result, err := s.efood.Purchase(purchaseCtx, req)
	if err != nil {
		logger.Error.Printf("session %s: purchase failed: %v", sessionID, err)
		if saveErr := s.rp.Session.Save(saveCtx, sessionID, checkout.EndSubmit(marked)); saveErr != nil {
			logger.Error.Printf("session %s: failed to clear submit marker: %v", sessionID, saveErr)
		}
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusBadGateway,
			Message: checkout.MsgPurchaseFailed,
			Error:   err,
		})
	}

	delivery := req.Delivery
	if result.Delivery != nil {
		delivery = *result.Delivery
	}

	next, err := checkout.CompleteOrder(marked, checkout.Order{ID: result.OrderID, Delivery: delivery})
	if err != nil {
		return failure(err)
	}

	if err := s.rp.Session.Save(saveCtx, sessionID, next); err != nil {
		logger.Error.Printf("session %s: order %s placed but state not saved: %v", sessionID, result.OrderID, err)
		return failure(err)
	}

	s.publishOrderPlaced(saveCtx, sessionID, next)

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusCreated,
		Message: "Order placed",
		Data:    NewCartView(next),
	})
}

func (s *Service) publishOrderPlaced(ctx context.Context, sessionID string, state checkout.State) {
	if s.publisher == nil {
		return
	}
	evt := checkout.NewOrderPlacedEvent(sessionID, state, time.Now().UTC())
	if err := s.publisher.PublishEvent(ctx, checkout.QueueOrderPlaced, checkout.EventOrderPlaced, evt); err != nil {
		logger.Warning.Printf("session %s: failed to publish %s for %s: %v", sessionID, checkout.EventOrderPlaced, evt.OrderID, err)
	}
}
