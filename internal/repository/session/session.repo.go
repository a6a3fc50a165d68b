package session

import (
	"context"
	"efood-checkout/internal/common/checkout"
	"efood-checkout/internal/pkg/helper"
	"efood-checkout/internal/pkg/redis"
	"errors"
	"fmt"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

type IRepository interface {
	Create(ctx context.Context, sessionID string) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Load(ctx context.Context, sessionID string) (checkout.State, error)
	Save(ctx context.Context, sessionID string, state checkout.State) error
	Delete(ctx context.Context, sessionID string) error
	Lock(ctx context.Context, sessionID string) (*redis.Lock, error)
}

type Repository struct {
	redis   redis.IRedis
	ttl     time.Duration
	lockTTL time.Duration
}

func NewRepo(rds redis.IRedis, ttl, lockTTL time.Duration) IRepository {
	return &Repository{
		redis:   rds,
		ttl:     ttl,
		lockTTL: lockTTL,
	}
}

func stateKey(sessionID string) string {
	return fmt.Sprintf("session:%s:state", sessionID)
}

func lockKey(sessionID string) string {
	return fmt.Sprintf("session:%s:lock", sessionID)
}

func (r *Repository) Create(ctx context.Context, sessionID string) error {
	ok, err := r.redis.SetNX(ctx, stateKey(sessionID), checkout.NewState(), r.ttl)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("session %s already exists", sessionID)
	}
	return nil
}

func (r *Repository) Exists(ctx context.Context, sessionID string) (bool, error) {
	raw, err := r.redis.Get(ctx, stateKey(sessionID))
	if err != nil {
		return false, err
	}
	return raw != "", nil
}

// Load returns ErrSessionNotFound once the session has expired.
func (r *Repository) Load(ctx context.Context, sessionID string) (checkout.State, error) {
	raw, err := r.redis.Get(ctx, stateKey(sessionID))
	if err != nil {
		return checkout.State{}, err
	}
	if raw == "" {
		return checkout.State{}, ErrSessionNotFound
	}

	state, err := helper.ByteToStruct[checkout.State]([]byte(raw))
	if err != nil {
		return checkout.State{}, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	if !state.Step.IsValid() {
		state.Step = checkout.StepBrowsing
	}
	if state.Items == nil {
		state.Items = []checkout.Item{}
	}
	return *state, nil
}

// Save stores state and slides the session expiry.
func (r *Repository) Save(ctx context.Context, sessionID string, state checkout.State) error {
	return r.redis.Set(ctx, stateKey(sessionID), state, r.ttl)
}

func (r *Repository) Delete(ctx context.Context, sessionID string) error {
	return r.redis.Del(ctx, stateKey(sessionID))
}

func (r *Repository) Lock(ctx context.Context, sessionID string) (*redis.Lock, error) {
	return r.redis.Lock(ctx, lockKey(sessionID), r.lockTTL)
}
