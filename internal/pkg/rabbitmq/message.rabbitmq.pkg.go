package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	amqp "github.com/rabbitmq/amqp091-go"
)

const RetryCountHeader = "x-retry-count"

type Message struct {
	ID          string     `json:"id"`
	Body        []byte     `json:"content"`
	Headers     amqp.Table `json:"headers,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
	ContentType string     `json:"content_type"`
}

// Event is the envelope of every published domain event.
type Event struct {
	Type string          `json:"type"`
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

func NewMessage(payload any, headers amqp.Table) (*Message, error) {
	gid, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	id := fmt.Sprintf("msg_%s_%d", gid, time.Now().Unix())

	var body []byte
	var contentType string
	switch v := payload.(type) {
	case string:
		body = []byte(v)
		contentType = "text/plain"
	case []byte:
		body = v
		contentType = "application/octet-stream"
	default:
		body, err = json.Marshal(v)
		if err != nil {
			return nil, err
		}
		contentType = "application/json"
	}

	h := amqp.Table{}
	for k, v := range headers {
		h[k] = v
	}

	return &Message{
		ID:          id,
		Body:        body,
		Headers:     h,
		Timestamp:   time.Now(),
		ContentType: contentType,
	}, nil
}

// NewEvent wraps data in an Event envelope that shares the message id.
func NewEvent(eventType string, data any) (*Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	msg, err := NewMessage([]byte(nil), amqp.Table{"type": eventType})
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(Event{Type: eventType, ID: msg.ID, Data: raw})
	if err != nil {
		return nil, err
	}
	msg.Body = body
	msg.ContentType = "application/json"
	return msg, nil
}

// DecodeEvent reads an Event envelope and unmarshals its data into T.
func DecodeEvent[T any](body []byte) (*Event, *T, error) {
	var evt Event
	if err := json.Unmarshal(body, &evt); err != nil {
		return nil, nil, fmt.Errorf("failed to decode event: %w", err)
	}
	var data T
	if err := json.Unmarshal(evt.Data, &data); err != nil {
		return &evt, nil, fmt.Errorf("failed to decode %s event data: %w", evt.Type, err)
	}
	return &evt, &data, nil
}

func (m *Message) GeneratePayload() amqp.Publishing {
	m.Headers["id"] = m.ID

	return amqp.Publishing{
		ContentType:  m.ContentType,
		Body:         m.Body,
		MessageId:    m.ID,
		Timestamp:    m.Timestamp,
		DeliveryMode: amqp.Persistent,
		Headers:      m.Headers,
	}
}

func retryCount(headers amqp.Table) int {
	if headers == nil {
		return 0
	}
	switch v := headers[RetryCountHeader].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	}
	return 0
}

func republishing(msg *amqp.Delivery) amqp.Publishing {
	return amqp.Publishing{
		Headers:         msg.Headers,
		ContentType:     msg.ContentType,
		ContentEncoding: msg.ContentEncoding,
		DeliveryMode:    msg.DeliveryMode,
		Priority:        msg.Priority,
		CorrelationId:   msg.CorrelationId,
		ReplyTo:         msg.ReplyTo,
		Expiration:      msg.Expiration,
		MessageId:       msg.MessageId,
		Timestamp:       msg.Timestamp,
		Type:            msg.Type,
		UserId:          msg.UserId,
		AppId:           msg.AppId,
		Body:            msg.Body,
	}
}
