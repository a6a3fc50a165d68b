package rabbitmq

import (
	"context"
	"fmt"
	"sync"
)

type Publisher struct {
	channel  *ChannelManager
	queueCfg *QueueConfig
	declared sync.Map
}

func NewPublisher(ctx context.Context, connManager *ConnectionManager) *Publisher {
	return &Publisher{
		channel:  NewChannelManager(ctx, connManager),
		queueCfg: DefaultQueueConfig(),
	}
}

// Publish sends msg to queue on the default exchange, declaring the queue
// the first time it is used.
func (p *Publisher) Publish(ctx context.Context, queue string, msg *Message) error {
	ch, err := p.channel.GetChannel()
	if err != nil {
		return fmt.Errorf("failed to get channel: %w", err)
	}

	if _, ok := p.declared.Load(queue); !ok {
		if _, err := p.queueCfg.declare(ch, queue); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}
		p.declared.Store(queue, struct{}{})
	}

	if err := ch.PublishWithContext(ctx, "", queue, false, false, msg.GeneratePayload()); err != nil {
		return fmt.Errorf("failed to publish message %s to %s: %w", msg.ID, queue, err)
	}
	return nil
}

// PublishEvent wraps data as an Event of eventType and publishes it.
func (p *Publisher) PublishEvent(ctx context.Context, queue, eventType string, data any) error {
	msg, err := NewEvent(eventType, data)
	if err != nil {
		return err
	}
	return p.Publish(ctx, queue, msg)
}

func (p *Publisher) Close() error {
	return p.channel.Close()
}
