package checkout

import (
	"context"
	"efood-checkout/internal/common/checkout"
	types "efood-checkout/internal/common/type"
	"efood-checkout/internal/pkg/helper"
	"efood-checkout/internal/pkg/logger"
	"efood-checkout/internal/pkg/validation"
	"net/http"

	"golang.org/x/text/language"
)

func (s *Service) OpenDelivery(ctx context.Context, sessionID string) *types.Response {
	return s.apply(ctx, sessionID, checkout.OpenDelivery)
}

func (s *Service) CloseDelivery(ctx context.Context, sessionID string) *types.Response {
	return s.apply(ctx, sessionID, checkout.CloseDelivery)
}

// SubmitDelivery validates the form before taking the session lock; an
// invalid form never touches the state.
func (s *Service) SubmitDelivery(ctx context.Context, sessionID string, lang language.Tag, req *checkout.Delivery) *types.Response {
	if err := validation.ValidateIn(lang, req); err != nil {
		return failure(err)
	}

	data := *req
	return s.apply(ctx, sessionID, func(state checkout.State) (checkout.State, error) {
		return checkout.SubmitDelivery(state, data)
	})
}

func (s *Service) ClosePayment(ctx context.Context, sessionID string) *types.Response {
	return s.apply(ctx, sessionID, checkout.ClosePayment)
}

func (s *Service) ConfirmPayment(ctx context.Context, sessionID string, lang language.Tag, req *checkout.Payment) *types.Response {
	if err := validation.ValidateIn(lang, req); err != nil {
		return failure(err)
	}

	data := *req
	res := s.apply(ctx, sessionID, func(state checkout.State) (checkout.State, error) {
		return checkout.ConfirmPayment(state, data)
	})
	if res.Code == http.StatusOK {
		logger.Debug.Printf("session %s: payment captured, card %s",
			sessionID,
			helper.MaskString(data.CardNumber, 4),
		)
	}
	return res
}

func (s *Service) CloseFinal(ctx context.Context, sessionID string) *types.Response {
	return s.apply(ctx, sessionID, checkout.CloseFinal)
}
