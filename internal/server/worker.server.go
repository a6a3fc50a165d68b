package serverApp

import (
	"context"
	orderHandler "efood-checkout/internal/handler/order"
	"efood-checkout/internal/pkg/logger"
	"efood-checkout/internal/pkg/rabbitmq"
	orderService "efood-checkout/internal/service/order"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants"
)

// InitWorker starts the background consumers on an ants pool and returns a
// function that stops them.
func InitWorker(ctx context.Context, deps *Dependencies) (func(), error) {
	if deps.Rabbit == nil || deps.DB == nil {
		return nil, errors.New("workers need rabbitmq and a database")
	}

	poolOpts := ants.Options{
		ExpiryDuration: time.Hour,
		PreAlloc:       true,
		Nonblocking:    true,
		PanicHandler: func(i interface{}) {
			logger.Error.Printf("Worker panic: %v\n", i)
		},
	}

	pool, err := ants.NewPool(10, ants.WithOptions(poolOpts))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	var (
		mu          sync.Mutex
		subscribers []*rabbitmq.Subscriber
	)

	OrderHandler := orderHandler.NewHandler(ctx, deps.Rabbit, orderService.NewService(newRepository(deps), deps.S3))
	err = pool.Submit(func() {
		sub, err := OrderHandler.Subscribe()
		if err != nil {
			logger.Error.Printf("Failed to initialize order worker: %v\n", err)
			return
		}
		mu.Lock()
		subscribers = append(subscribers, sub)
		mu.Unlock()
	})
	if err != nil {
		pool.Release()
		return nil, fmt.Errorf("failed to submit task to pool: %w", err)
	}

	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		for _, sub := range subscribers {
			if err := sub.Stop(); err != nil {
				logger.Error.Printf("Failed to stop subscriber: %v", err)
			}
		}
		pool.Release()
	}
	return stop, nil
}
