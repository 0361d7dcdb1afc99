package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/events"

	"github.com/segmentio/kafka-go"
)

type Producer struct {
	shareWriter *kafka.Writer
}

// NewProducer creates a Kafka producer for the folder.sharing topic.
func NewProducer(brokers []string) *Producer {
	shareWriter := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        events.FolderSharingTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	return &Producer{shareWriter: shareWriter}
}

// PublishShareEvent publishes a sharing event keyed by folder id so events
// for one folder stay ordered within a partition.
func (p *Producer) PublishShareEvent(ctx context.Context, event *events.ShareEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal share event: %v", err)
		return err
	}

	message := kafka.Message{
		Key:   []byte(event.FolderID),
		Value: value,
		Time:  event.Timestamp,
	}

	if err := p.shareWriter.WriteMessages(ctx, message); err != nil {
		log.Printf("Failed to publish share event: %v", err)
		return err
	}

	log.Printf("Published share event: %s for folder %s", event.EventType, event.FolderID)
	return nil
}

// Close closes the underlying writer.
func (p *Producer) Close() error {
	return p.shareWriter.Close()
}
