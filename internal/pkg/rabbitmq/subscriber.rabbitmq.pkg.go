package rabbitmq

import (
	"context"
	"efood-checkout/internal/pkg/logger"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler processes one delivery. Returning an error schedules a
// retry; after MaxRetryAttempts the message goes to the dead letter queue.
type MessageHandler func(ctx context.Context, msg *amqp.Delivery) error

type RetryStrategy string

const (
	FixedRetry       RetryStrategy = "fixed"
	ExponentialRetry RetryStrategy = "exponential"
	LinearRetry      RetryStrategy = "linear"
)

type SubscribeOptions struct {
	QueueOpts        *QueueConfig
	QueueName        string
	ConsumerName     string
	WorkerCount      int
	PrefetchCount    int
	HandlerTimeout   time.Duration
	MaxRetryAttempts int
	EnableDeadLetter bool
	DeadLetterName   string
	RetryStrategy    RetryStrategy
	BaseRetryDelay   time.Duration
	MaxRetryDelay    time.Duration
}

func DefaultSubscribeOptions(queueName string) *SubscribeOptions {
	return &SubscribeOptions{
		QueueOpts:        DefaultQueueConfig(),
		QueueName:        queueName,
		ConsumerName:     queueName,
		WorkerCount:      2,
		PrefetchCount:    10,
		HandlerTimeout:   time.Minute,
		MaxRetryAttempts: 5,
		EnableDeadLetter: true,
		DeadLetterName:   "fail:" + queueName,
		RetryStrategy:    ExponentialRetry,
		BaseRetryDelay:   2 * time.Second,
		MaxRetryDelay:    5 * time.Minute,
	}
}

type Subscriber struct {
	connManager *ConnectionManager
	channels    []*ChannelManager
	handler     MessageHandler
	opts        *SubscribeOptions
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	isRunning   atomic.Bool
	pool        *ants.Pool
}

func NewSubscriber(ctx context.Context, connManager *ConnectionManager, handler MessageHandler, opts *SubscribeOptions) (*Subscriber, error) {
	ctx, cancel := context.WithCancel(ctx)

	pool, err := ants.NewPool(opts.WorkerCount*opts.PrefetchCount, ants.WithOptions(ants.Options{
		ExpiryDuration: time.Hour,
		Nonblocking:    false,
		PanicHandler: func(i any) {
			logger.Error.Printf("Message processor panic on %s: %v", opts.QueueName, i)
		},
	}))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create %s worker pool: %w", opts.QueueName, err)
	}

	sub := &Subscriber{
		connManager: connManager,
		handler:     handler,
		opts:        opts,
		ctx:         ctx,
		cancel:      cancel,
		channels:    make([]*ChannelManager, opts.WorkerCount),
		pool:        pool,
	}
	for i := range sub.channels {
		sub.channels[i] = NewChannelManager(ctx, connManager)
	}

	return sub, nil
}

// Start launches one consumer loop per worker and returns immediately.
func (s *Subscriber) Start() error {
	if s.isRunning.Swap(true) {
		return errors.New("subscriber is already running")
	}
	for i := 0; i < s.opts.WorkerCount; i++ {
		s.wg.Add(1)
		go s.runWorker(i)
	}
	logger.Info.Printf("Subscriber %s started with %d workers", s.opts.QueueName, s.opts.WorkerCount)
	return nil
}

func (s *Subscriber) runWorker(workerID int) {
	defer s.wg.Done()

	backoff := &exponentialBackoff{min: time.Second, max: 30 * time.Second, factor: 2}

	for s.isRunning.Load() && s.ctx.Err() == nil {
		if err := s.consume(workerID); err != nil {
			logger.Warning.Printf("Worker %d on %s consume error: %v", workerID, s.opts.QueueName, err)
			if !backoff.sleep(s.ctx) {
				return
			}
			continue
		}
		backoff.reset()
	}
}

func (s *Subscriber) consume(workerID int) error {
	ch, err := s.channels[workerID].GetChannel()
	if err != nil {
		return fmt.Errorf("failed to get channel: %w", err)
	}

	if err := ch.Qos(s.opts.PrefetchCount, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	q, err := s.opts.QueueOpts.declare(ch, s.opts.QueueName)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	consumerName := fmt.Sprintf("%s-%d-%d", s.opts.ConsumerName, workerID, time.Now().Unix())
	msgs, err := ch.ConsumeWithContext(s.ctx, q.Name, consumerName, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming on worker %d: %w", workerID, err)
	}

	for msg := range msgs {
		delivery := msg
		if err := s.pool.Submit(func() {
			if err := s.processMessage(workerID, &delivery); err != nil {
				logger.Error.Printf("Worker %d failed to process message %s: %v", workerID, delivery.MessageId, err)
			}
		}); err != nil {
			logger.Error.Printf("Worker %d failed to submit to pool: %v", workerID, err)
			_ = delivery.Nack(false, true)
		}
	}

	return nil
}

func (s *Subscriber) processMessage(workerID int, msg *amqp.Delivery) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.HandlerTimeout)
	defer cancel()

	err := s.handler(ctx, msg)
	if err == nil {
		if ackErr := msg.Ack(false); ackErr != nil {
			return fmt.Errorf("failed to acknowledge message: %w", ackErr)
		}
		return nil
	}

	attempt := retryCount(msg.Headers)
	if attempt >= s.opts.MaxRetryAttempts {
		if ackErr := msg.Ack(false); ackErr != nil {
			return fmt.Errorf("failed to acknowledge message: %w", ackErr)
		}
		if !s.opts.EnableDeadLetter {
			return fmt.Errorf("dropping message after %d attempts: %w", attempt, err)
		}
		if dlErr := s.publishToDeadLetter(workerID, msg, err); dlErr != nil {
			return fmt.Errorf("failed to publish to dead letter queue: %w", dlErr)
		}
		return nil
	}

	if retryErr := s.republishWithDelay(workerID, msg, attempt+1); retryErr != nil {
		return fmt.Errorf("failed to schedule retry: %w", retryErr)
	}
	return fmt.Errorf("handler error on attempt %d: %w", attempt+1, err)
}

func (s *Subscriber) republishWithDelay(workerID int, msg *amqp.Delivery, attempt int) error {
	if msg.Headers == nil {
		msg.Headers = amqp.Table{}
	}
	msg.Headers[RetryCountHeader] = int32(attempt)
	publishing := republishing(msg)
	delay := s.retryDelay(attempt)

	if err := msg.Ack(false); err != nil {
		return fmt.Errorf("failed to acknowledge original message: %w", err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-s.ctx.Done():
			return
		}

		ch, err := s.channels[workerID].GetChannel()
		if err != nil {
			logger.Error.Printf("Failed to get channel after delay: %v", err)
			return
		}
		if err := ch.PublishWithContext(s.ctx, "", s.opts.QueueName, false, false, publishing); err != nil {
			logger.Error.Printf("Failed to republish message after delay: %v", err)
		}
	}()

	return nil
}

func (s *Subscriber) publishToDeadLetter(workerID int, msg *amqp.Delivery, cause error) error {
	ch, err := s.channels[workerID].GetChannel()
	if err != nil {
		return fmt.Errorf("failed to get channel for dead letter: %w", err)
	}

	if _, err := DefaultQueueConfig().declare(ch, s.opts.DeadLetterName); err != nil {
		return fmt.Errorf("failed to declare dead letter queue: %w", err)
	}

	if msg.Headers == nil {
		msg.Headers = amqp.Table{}
	}
	msg.Headers["x-death-reason"] = cause.Error()
	msg.Headers["x-death-time"] = time.Now().Format(time.RFC3339)
	msg.Headers["x-death-queue"] = s.opts.QueueName

	if err := ch.PublishWithContext(s.ctx, "", s.opts.DeadLetterName, false, false, republishing(msg)); err != nil {
		return fmt.Errorf("failed to publish to dead letter queue: %w", err)
	}

	logger.Warning.Printf("Message %s moved to %s after %d retries", msg.MessageId, s.opts.DeadLetterName, retryCount(msg.Headers))
	return nil
}

func (s *Subscriber) retryDelay(attempt int) time.Duration {
	var delay time.Duration

	switch s.opts.RetryStrategy {
	case FixedRetry:
		delay = s.opts.BaseRetryDelay
	case LinearRetry:
		delay = s.opts.BaseRetryDelay * time.Duration(attempt)
	default:
		delay = s.opts.BaseRetryDelay << max(attempt-1, 0)
	}

	if delay <= 0 || delay > s.opts.MaxRetryDelay {
		delay = s.opts.MaxRetryDelay
	}
	return delay
}

func (s *Subscriber) Stop() error {
	if !s.isRunning.Swap(false) {
		return nil
	}

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		return fmt.Errorf("timeout waiting for %s workers to stop", s.opts.QueueName)
	}

	for i, ch := range s.channels {
		if err := ch.Close(); err != nil {
			logger.Error.Printf("Error closing channel for worker %d: %v", i, err)
		}
	}

	s.pool.Release()
	return nil
}

func (s *Subscriber) IsHealthy() bool {
	return s.isRunning.Load() && !s.connManager.IsClosed()
}

type exponentialBackoff struct {
	min    time.Duration
	max    time.Duration
	factor float64
	curr   time.Duration
}

// sleep waits for the next backoff step and reports false if ctx ended.
func (b *exponentialBackoff) sleep(ctx context.Context) bool {
	if b.curr == 0 {
		b.curr = b.min
	} else {
		b.curr = min(time.Duration(float64(b.curr)*b.factor), b.max)
	}

	select {
	case <-ctx.Done():
		return false
	case <-time.After(b.curr):
		return true
	}
}

func (b *exponentialBackoff) reset() {
	b.curr = 0
}
