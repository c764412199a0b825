package poller

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/apoorvasinha183/AisleFindYou/internal/domain"
	"github.com/segmentio/kafka-go"
)

const consumerGroup = "aislefindyou-api"

// Invalidator drops cached catalog state.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Poller invalidates the catalog cache whenever the catalog is reseeded.
type Poller struct {
	catalog Invalidator
	reader  messageReader
}

func NewPoller(catalog Invalidator, topic string, brokers ...string) *Poller {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  consumerGroup,
		MaxBytes: 10e6, // 10MB
	})
	return &Poller{catalog: catalog, reader: reader}
}

func (p *Poller) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		m, err := p.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			log.Printf("error reading catalog event: %v", err)
			continue
		}
		p.handleMessage(ctx, m)
	}
}

func (p *Poller) Close() {
	if err := p.reader.Close(); err != nil {
		log.Printf("error closing kafka reader: %v", err)
	}
}

func (p *Poller) handleMessage(ctx context.Context, m kafka.Message) bool {
	var event domain.CatalogEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		log.Printf("error parsing catalog event at offset %d: %v", m.Offset, err)
		return false
	}

	eventType := headerValue(m.Headers, "event_type")
	if eventType == "" {
		eventType = event.Type
	}
	if eventType != domain.CatalogEventReseeded {
		log.Printf("skipping catalog event %q", eventType)
		return false
	}

	if err := p.catalog.Invalidate(ctx); err != nil {
		log.Printf("failed to invalidate catalog cache: %v", err)
		return false
	}
	log.Printf("catalog reseeded with %d stores, cache invalidated", event.StoreCount)
	return true
}

func headerValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
