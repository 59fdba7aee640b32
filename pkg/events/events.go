package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/yourjourney/guest-portal/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	QueueSubscribe(subject, queue string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
	ID        string
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
			ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		})
	})
	return err
}

func (n *NATSEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	_, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
			ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		})
	})
	return err
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// Event subjects
const (
	GuestBookingCreated = "guest_booking.created"
	GuestBookingDeleted = "guest_booking.deleted"
	GuestAccessGranted  = "guest_access.granted"
	GuestAccessExpired  = "guest_access.expired"
	PropertyUpdated     = "property.updated"
	NotifySend          = "notify.send"
)

// Event payloads
type GuestBookingCreatedEvent struct {
	BookingID    string    `json:"booking_id"`
	PropertySlug string    `json:"property_slug"`
	PropertyName string    `json:"property_name"`
	GuestName    string    `json:"guest_name"`
	GuestSurname string    `json:"guest_surname"`
	GuestEmail   string    `json:"guest_email,omitempty"`
	CheckinDate  string    `json:"checkin_date"`
	CheckoutDate string    `json:"checkout_date"`
	AccessLink   string    `json:"access_link"`
	CreatedAt    time.Time `json:"created_at"`
}

type GuestAccessEvent struct {
	BookingID    string    `json:"booking_id"`
	PropertySlug string    `json:"property_slug"`
	Decision     string    `json:"decision"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type PropertyUpdatedEvent struct {
	PropertyID string    `json:"property_id"`
	Slug       string    `json:"slug"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type NotificationEvent struct {
	Type      string                 `json:"type"`
	Recipient string                 `json:"recipient"`
	Subject   string                 `json:"subject"`
	Data      map[string]interface{} `json:"data"`
}
