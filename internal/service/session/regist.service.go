package session

import (
	"context"
	types "efood-checkout/internal/common/type"
	"efood-checkout/internal/repository"
	"time"
)

type Service struct {
	rp repository.IRepository
}

type IService interface {
	Create(ctx context.Context) *types.Response
}

func NewService(rp repository.IRepository) IService {
	return &Service{rp: rp}
}

type CreateSessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
