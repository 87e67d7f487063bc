package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jsarabia/fn-location/internal/domain"
)

// NoOpEventPublisher for testing or when event publishing is not available
type NoOpEventPublisher struct{}

// NewNoOpEventPublisher creates a new no-op event publisher
func NewNoOpEventPublisher() *NoOpEventPublisher {
	return &NoOpEventPublisher{}
}

// PublishEvent drops the event
func (p *NoOpEventPublisher) PublishEvent(ctx context.Context, event *domain.CoordinateEvent) error {
	return nil
}

// Close is a no-op for the NoOpEventPublisher
func (p *NoOpEventPublisher) Close() error {
	return nil
}

// LoggingEventPublisher logs events instead of publishing (useful for development)
type LoggingEventPublisher struct{}

// NewLoggingEventPublisher creates a new logging event publisher
func NewLoggingEventPublisher() *LoggingEventPublisher {
	return &LoggingEventPublisher{}
}

// PublishEvent logs the event in a formatted way
func (p *LoggingEventPublisher) PublishEvent(ctx context.Context, event *domain.CoordinateEvent) error {
	eventData, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal event for logging: %w", err)
	}

	log.Printf("Event published:\n%s", string(eventData))
	return nil
}

// Close is a no-op for the LoggingEventPublisher
func (p *LoggingEventPublisher) Close() error {
	return nil
}
