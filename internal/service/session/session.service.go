package session

import (
	"context"
	types "efood-checkout/internal/common/type"
	"efood-checkout/internal/pkg/helper"
	"efood-checkout/internal/pkg/jwt"
	"fmt"
	"net/http"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const sessionIDLength = 21

func (s *Service) Create(ctx context.Context) *types.Response {
	sessionID, err := gonanoid.New(sessionIDLength)
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create session",
			Error:   fmt.Errorf("generate session id: %w", err),
		})
	}

	if err := s.rp.Session.Create(ctx, sessionID); err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create session",
			Error:   err,
		})
	}

	token, exp, err := jwt.GenerateToken(types.SessionWithAuth{SessionID: sessionID})
	if err != nil {
		_ = s.rp.Session.Delete(ctx, sessionID)
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create session",
			Error:   err,
		})
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusCreated,
		Message: "Session created",
		Data: CreateSessionResponse{
			SessionID: sessionID,
			Token:     token,
			ExpiresAt: *exp,
		},
	})
}
