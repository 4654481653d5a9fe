// Package notify delivers user notifications. KafkaNotifier publishes them for the
// notification service; LogNotifier writes them to the log for local runs.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// DefaultTopic receives every marketplace notification.
const DefaultTopic = "marketplace.notifications"

// messageWriter is the part of *kafka.Writer the notifier needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Message is the JSON payload published for each notification.
type Message struct {
	RecipientID string    `json:"recipient_id"`
	Category    string    `json:"category"`
	Subject     string    `json:"subject,omitempty"`
	Message     string    `json:"message"`
	SentAt      time.Time `json:"sent_at"`
}

// KafkaNotifier publishes notifications keyed by recipient, so one user's messages keep
// their order within a partition.
type KafkaNotifier struct {
	writer messageWriter
	now    func() time.Time
}

// NewKafkaNotifier creates a notifier writing to topic on brokers.
func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	if topic == "" {
		topic = DefaultTopic
	}
	return NewKafkaNotifierWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	})
}

func NewKafkaNotifierWithWriter(writer messageWriter) *KafkaNotifier {
	return &KafkaNotifier{writer: writer, now: time.Now}
}

// Notify publishes n. Broker failures are reported as errs.UnavailableError.
func (k *KafkaNotifier) Notify(ctx context.Context, n ports.Notification) error {
	if err := n.RecipientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("recipient", err)
	}

	payload := Message{
		RecipientID: n.RecipientID.String(),
		Category:    n.Category,
		Message:     n.Message,
		SentAt:      k.now().UTC(),
	}
	if n.Subject.Validate() == nil {
		payload.Subject = n.Subject.String()
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.RecipientID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "category", Value: []byte(n.Category)},
		},
	})
	if err != nil {
		return errs.NewUnavailableError("kafka", err)
	}
	return nil
}

// Close flushes pending messages and releases the writer.
func (k *KafkaNotifier) Close() error {
	return k.writer.Close()
}
