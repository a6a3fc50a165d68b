package rabbitmq

import (
	"context"
	"strings"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_URL(t *testing.T) {
	c := &Config{Username: "guest", Password: "pw", Host: "mq", Port: 5672}
	assert.Equal(t, "amqp://guest:pw@mq:5672/", c.URL())

	c.URI = "amqps://example/vhost"
	assert.Equal(t, "amqps://example/vhost", c.URL())
}

func TestNewMessage_ContentTypes(t *testing.T) {
	msg, err := NewMessage("hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", msg.ContentType)
	assert.True(t, strings.HasPrefix(msg.ID, "msg_"))

	msg, err = NewMessage(map[string]int{"a": 1}, amqp.Table{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.JSONEq(t, `{"a":1}`, string(msg.Body))

	pub := msg.GeneratePayload()
	assert.Equal(t, msg.ID, pub.MessageId)
	assert.Equal(t, amqp.Persistent, pub.DeliveryMode)
	assert.Equal(t, "v", pub.Headers["k"])
}

func TestEvent_RoundTrip(t *testing.T) {
	type placed struct {
		OrderID string `json:"order_id"`
	}

	msg, err := NewEvent("order.placed", placed{OrderID: "ORD-1"})
	require.NoError(t, err)
	assert.Equal(t, "order.placed", msg.Headers["type"])

	evt, data, err := DecodeEvent[placed](msg.Body)
	require.NoError(t, err)
	assert.Equal(t, "order.placed", evt.Type)
	assert.Equal(t, msg.ID, evt.ID)
	assert.Equal(t, "ORD-1", data.OrderID)
}

func TestDecodeEvent_Garbage(t *testing.T) {
	_, _, err := DecodeEvent[map[string]any]([]byte("not json"))
	assert.Error(t, err)
}

func TestRetryCount(t *testing.T) {
	assert.Equal(t, 0, retryCount(nil))
	assert.Equal(t, 2, retryCount(amqp.Table{RetryCountHeader: int32(2)}))
	assert.Equal(t, 3, retryCount(amqp.Table{RetryCountHeader: int64(3)}))
	assert.Equal(t, 0, retryCount(amqp.Table{RetryCountHeader: "x"}))
}

func TestSubscriber_RetryDelay(t *testing.T) {
	opts := DefaultSubscribeOptions("q")
	opts.BaseRetryDelay = time.Second
	opts.MaxRetryDelay = 10 * time.Second
	s := &Subscriber{opts: opts}

	opts.RetryStrategy = ExponentialRetry
	assert.Equal(t, time.Second, s.retryDelay(1))
	assert.Equal(t, 4*time.Second, s.retryDelay(3))
	assert.Equal(t, 10*time.Second, s.retryDelay(8))

	opts.RetryStrategy = LinearRetry
	assert.Equal(t, 3*time.Second, s.retryDelay(3))

	opts.RetryStrategy = FixedRetry
	assert.Equal(t, time.Second, s.retryDelay(7))
}

func TestExponentialBackoff_StopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &exponentialBackoff{min: time.Hour, max: time.Hour, factor: 2}
	assert.False(t, b.sleep(ctx))
}
