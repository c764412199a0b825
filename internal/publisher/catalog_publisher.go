package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/apoorvasinha183/AisleFindYou/internal/domain"
	"github.com/segmentio/kafka-go"
)

// DefaultTopic carries catalog change events.
const DefaultTopic = "catalog-events"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type CatalogPublisher struct {
	writer messageWriter
	now    func() time.Time
}

func NewCatalogPublisher(topic string, brokers ...string) *CatalogPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &CatalogPublisher{writer: w, now: time.Now}
}

// PublishReseeded announces that the persisted catalog was replaced.
func (p *CatalogPublisher) PublishReseeded(ctx context.Context, storeCount int) error {
	msg, err := newEventMessage(domain.CatalogEvent{
		Type:       domain.CatalogEventReseeded,
		StoreCount: storeCount,
		OccurredAt: p.now().UTC(),
	})
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", domain.CatalogEventReseeded, err)
	}
	log.Printf("published %s event (%d stores)", domain.CatalogEventReseeded, storeCount)
	return nil
}

func (p *CatalogPublisher) Close() error {
	return p.writer.Close()
}

func newEventMessage(event domain.CatalogEvent) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal catalog event: %w", err)
	}
	return kafka.Message{
		Key:   []byte("catalog"), // single key keeps events ordered
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}, nil
}
