package session

import (
	"context"
	"efood-checkout/internal/common/checkout"
	"efood-checkout/internal/pkg/redis"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (IRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	rds, err := redis.Setup(context.Background(), &redis.Config{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rds.Close() })

	return NewRepo(rds, time.Hour, time.Second), mr
}

func TestRepository_CreateLoadSave(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "s1"))
	assert.Error(t, repo.Create(ctx, "s1"))
	assert.Equal(t, time.Hour, mr.TTL("session:s1:state"))

	state, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, checkout.NewState(), state)

	state, _ = checkout.AddItem(state, checkout.Item{ID: 7, Name: "Pizza", Price: decimal.RequireFromString("60.9")})
	state, err = checkout.OpenCart(state)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, "s1", state))

	loaded, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestRepository_LoadMissing(t *testing.T) {
	repo, _ := newRepo(t)

	_, err := repo.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	ok, err := repo.Exists(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_Delete(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "s2"))
	require.NoError(t, repo.Delete(ctx, "s2"))
	assert.False(t, mr.Exists("session:s2:state"))
}

func TestRepository_Lock(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	lock, err := repo.Lock(ctx, "s3")
	require.NoError(t, err)
	assert.True(t, mr.Exists("session:s3:lock"))
	require.NoError(t, lock.Release(ctx))
	assert.False(t, mr.Exists("session:s3:lock"))
}
