package database

import (
	"context"
	"testing"
	"time"

	"github.com/go-gorm/caches/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacher_MissThenHit(t *testing.T) {
	c := newMemoryCacher(0)
	ctx := context.Background()

	got, err := c.Get(ctx, "k", &caches.Query[any]{})
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Store(ctx, "k", &caches.Query[any]{RowsAffected: 3}))

	got, err = c.Get(ctx, "k", &caches.Query[any]{})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.EqualValues(t, 3, got.RowsAffected)

	require.NoError(t, c.Invalidate(ctx))
	got, err = c.Get(ctx, "k", &caches.Query[any]{})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryCacher_Expires(t *testing.T) {
	now := time.Now()
	c := newMemoryCacher(time.Minute)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Store(ctx, "orders", &caches.Query[any]{RowsAffected: 1}))

	now = now.Add(59 * time.Second)
	got, err := c.Get(ctx, "orders", &caches.Query[any]{})
	require.NoError(t, err)
	assert.NotNil(t, got)

	now = now.Add(time.Second)
	got, err = c.Get(ctx, "orders", &caches.Query[any]{})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDirectionEnum_Or(t *testing.T) {
	assert.Equal(t, ASC, DirectionEnum("asc").Or(DESC))
	assert.Equal(t, DESC, DirectionEnum("sideways").Or(DESC))
	assert.Equal(t, DESC, DirectionEnum("").Or(DESC))
}

func TestDialectorFor_RejectsUnknownDriver(t *testing.T) {
	_, err := dialectorFor(&Config{Driver: "sqlite"})
	assert.Error(t, err)

	d, err := dialectorFor(&Config{Driver: MYSQL, Host: "localhost", Port: 3306})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())
}
