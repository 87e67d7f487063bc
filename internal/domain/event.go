package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeCoordinateFix        EventType = "coordinate.fix"
	EventTypeCoordinateManualEdit EventType = "coordinate.manual_edit"
	EventTypeCoordinateMock       EventType = "coordinate.mock"
	EventTypeCoordinateFallback   EventType = "coordinate.fallback"
)

const sourceService = "location-service"

// CoordinateEvent is the envelope published for every committed coordinate.
type CoordinateEvent struct {
	ID            uuid.UUID         `json:"id"`
	EventType     EventType         `json:"event_type"`
	EventVersion  int               `json:"event_version"`
	Timestamp     time.Time         `json:"timestamp"`
	SourceService string            `json:"source_service"`
	Payload       CoordinatePayload `json:"payload"`
}

type CoordinatePayload struct {
	Latitude           float64      `json:"latitude"`
	Longitude          float64      `json:"longitude"`
	FormattedLatitude  string       `json:"formatted_latitude"`
	FormattedLongitude string       `json:"formatted_longitude"`
	Source             CommitSource `json:"source"`
}

func NewCoordinateEvent(change CoordinateChange) *CoordinateEvent {
	return &CoordinateEvent{
		ID:            uuid.New(),
		EventType:     eventTypeForSource(change.Source),
		EventVersion:  1,
		Timestamp:     time.Now().UTC(),
		SourceService: sourceService,
		Payload: CoordinatePayload{
			Latitude:           change.Coordinate.Latitude,
			Longitude:          change.Coordinate.Longitude,
			FormattedLatitude:  change.Coordinate.FormattedLatitude(),
			FormattedLongitude: change.Coordinate.FormattedLongitude(),
			Source:             change.Source,
		},
	}
}

func eventTypeForSource(source CommitSource) EventType {
	switch source {
	case SourceManual:
		return EventTypeCoordinateManualEdit
	case SourceMock:
		return EventTypeCoordinateMock
	case SourceFallback:
		return EventTypeCoordinateFallback
	default:
		return EventTypeCoordinateFix
	}
}

// EventPublisher pushes coordinate events to an external stream. Publishing
// is best effort; callers log failures and move on.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *CoordinateEvent) error
	Close() error
}
