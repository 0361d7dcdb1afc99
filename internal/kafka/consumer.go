package kafka

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/events"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

type EventHandler func(event events.ShareEvent) error

type Consumer struct {
	consumer *kafka.Consumer
	handlers map[string][]EventHandler
	topic    string
	done     chan struct{}
}

// NewConsumer creates a Kafka consumer subscribed to the sharing topic.
func NewConsumer(bootstrapServers, groupID string) (*Consumer, error) {
	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": bootstrapServers,
		"group.id":          groupID,
		"auto.offset.reset": "earliest",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	if err := c.SubscribeTopics([]string{events.FolderSharingTopic}, nil); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to subscribe to topic: %w", err)
	}

	return &Consumer{
		consumer: c,
		handlers: make(map[string][]EventHandler),
		topic:    events.FolderSharingTopic,
		done:     make(chan struct{}),
	}, nil
}

// RegisterHandler registers a handler for a specific event type.
func (c *Consumer) RegisterHandler(eventType string, handler EventHandler) {
	c.handlers[eventType] = append(c.handlers[eventType], handler)
}

// Start consumes messages until Close is called.
func (c *Consumer) Start() {
	for {
		select {
		case <-c.done:
			c.consumer.Close()
			return
		default:
			ev, err := c.consumer.ReadMessage(100 * time.Millisecond)
			if err != nil {
				// Timeouts and transient errors are handled by the consumer
				continue
			}

			var event events.ShareEvent
			if err := json.Unmarshal(ev.Value, &event); err != nil {
				log.Printf("Failed to unmarshal share event: %v", err)
				continue
			}

			for _, handler := range c.handlers[event.EventType] {
				if err := handler(event); err != nil {
					log.Printf("Error handling event %s: %v", event.EventType, err)
				}
			}
		}
	}
}

// Close stops the consume loop.
func (c *Consumer) Close() {
	close(c.done)
}
