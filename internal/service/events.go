package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"deepbark-service/internal/entity"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// EventPublisher writes account events to kafka. With a nil writer events are logged and dropped.
type EventPublisher struct {
	writer MessageWriter
	now    func() time.Time
}

func NewEventPublisher(writer MessageWriter) *EventPublisher {
	return &EventPublisher{writer: writer, now: time.Now}
}

// Enabled reports whether events actually leave the process.
func (p *EventPublisher) Enabled() bool {
	return p != nil && p.writer != nil
}

func (p *EventPublisher) Publish(ctx context.Context, event entity.AccountEvent) error {
	if !p.Enabled() {
		logger.Debug().Str("type", event.Type).Int64("user_id", event.UserID).Msg("No kafka writer configured, dropping account event")
		return nil
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now().UTC()
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// user-registered-1 or user-deleted-1
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("user-%s-%d", event.Type, event.UserID)),
		Value: eventJSON,
	}

	return p.writer.WriteMessages(ctx, msg)
}

// publishQuietly publishes and logs failures; used where the account change already succeeded.
func (p *EventPublisher) publishQuietly(ctx context.Context, event entity.AccountEvent) {
	if err := p.Publish(ctx, event); err != nil {
		logger.Error().Err(err).Msgf("Error publishing %s event for user %d", event.Type, event.UserID)
	}
}
