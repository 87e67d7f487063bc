package service

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jsarabia/fn-location/internal/config"
	"github.com/jsarabia/fn-location/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// EventService publishes coordinate events to Kafka
type EventService struct {
	writer *kafka.Writer
	topic  string
}

// NewEventService creates a new Kafka event service
func NewEventService(cfg config.KafkaConfig) (*EventService, error) {
	// Set defaults if not provided
	batchSize := cfg.BatchSize
	if batchSize == 0 {
		batchSize = 100
	}

	batchTimeout := 10 * time.Millisecond
	if cfg.BatchTimeout != "" {
		if duration, err := time.ParseDuration(cfg.BatchTimeout); err == nil {
			batchTimeout = duration
		}
	}

	// Convert acks string to int
	acks := 1 // Default to "1"
	if cfg.Acks != "" {
		switch cfg.Acks {
		case "0":
			acks = 0
		case "1":
			acks = 1
		case "all", "-1":
			acks = -1
		default:
			if acksInt, err := strconv.Atoi(cfg.Acks); err == nil {
				acks = acksInt
			}
		}
	}

	// Configure SASL authentication
	saslMechanism := plain.Mechanism{
		Username: cfg.APIKey,
		Password: cfg.APISecret,
	}

	// Create dialer with SASL and TLS
	dialer := &kafka.Dialer{
		Timeout:       10 * time.Second,
		DualStack:     true,
		SASLMechanism: saslMechanism,
		TLS:           &tls.Config{MinVersion: tls.VersionTLS12},
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.BootstrapServers),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           batchTimeout,
		BatchSize:              batchSize,
		Async:                  false, // Synchronous for reliability
		RequiredAcks:           kafka.RequiredAcks(acks),
		AllowAutoTopicCreation: false, // Topics should be pre-created
		Transport: &kafka.Transport{
			SASL: saslMechanism,
			TLS:  &tls.Config{MinVersion: tls.VersionTLS12},
		},
	}

	// Set the dialer for the writer
	writer.Transport.(*kafka.Transport).Dial = dialer.DialFunc

	return &EventService{
		writer: writer,
		topic:  cfg.Topic,
	}, nil
}

// PublishEvent publishes a coordinate event
func (e *EventService) PublishEvent(ctx context.Context, event *domain.CoordinateEvent) error {
	// Serialize event to JSON
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(event.Payload.Source), // Partition by commit source
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "event_id", Value: []byte(event.ID.String())},
			{Key: "timestamp", Value: []byte(event.Timestamp.Format(time.RFC3339))},
			{Key: "content_type", Value: []byte("application/json")},
			{Key: "producer", Value: []byte(event.SourceService)},
			{Key: "version", Value: []byte("1.0")},
		},
	}

	if err := e.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to publish event %s to topic %s: %w", event.EventType, e.topic, err)
	}

	return nil
}

// Close closes the Kafka writer
func (e *EventService) Close() error {
	return e.writer.Close()
}
