package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Config struct {
	Username string
	Password string
	Host     string
	Port     int
	URI      string
}

// URL prefers the explicit URI over the individual fields.
func (c *Config) URL() string {
	if c.URI != "" {
		return c.URI
	}
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.Username, c.Password, c.Host, c.Port)
}

type QueueConfig struct {
	Durable    bool
	AutoDelete bool
	Exclusive  bool
	NoWait     bool
	Args       amqp.Table
}

func DefaultQueueConfig() *QueueConfig {
	return &QueueConfig{
		Durable: true,
	}
}

func (q *QueueConfig) declare(ch *amqp.Channel, name string) (amqp.Queue, error) {
	args := q.Args
	if args == nil {
		args = amqp.Table{}
	}
	return ch.QueueDeclare(name, q.Durable, q.AutoDelete, q.Exclusive, q.NoWait, args)
}
