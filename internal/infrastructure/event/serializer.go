package event

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/vintrade/backend/internal/domain/shared"
)

// EventSerializer handles JSON serialization of domain events with
// wire schema versioning. Payloads read back from the outbox may have
// been written by an older build; Deserialize lifts them to the
// current schema through the registered upgrader chain before decoding.
type EventSerializer struct {
	versions *VersionRegistry
	logger   *zap.Logger
}

// NewEventSerializer creates an event serializer backed by an empty
// version registry
func NewEventSerializer(logger *zap.Logger) *EventSerializer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventSerializer{
		versions: NewVersionRegistry(),
		logger:   logger,
	}
}

// Register registers an event type whose wire schema has never changed.
// The eventType should match what EventType() returns on the event.
func (s *EventSerializer) Register(eventType string, eventInstance shared.DomainEvent) {
	s.versions.RegisterCurrent(eventType, eventInstance)
}

// RegisterVersioned registers an event type at currentVersion with the
// upgraders lifting every older stored payload to it
func (s *EventSerializer) RegisterVersioned(eventType string, currentVersion int, eventInstance shared.DomainEvent, upgraders ...EventUpgrader) error {
	return s.versions.RegisterVersioned(eventType, currentVersion, eventInstance, upgraders...)
}

// Serialize serializes a domain event to JSON bytes
func (s *EventSerializer) Serialize(event shared.DomainEvent) ([]byte, error) {
	return json.Marshal(event)
}

// Deserialize decodes JSON bytes to a domain event, upgrading stale
// payloads to the current wire schema first
func (s *EventSerializer) Deserialize(eventType string, data []byte) (shared.DomainEvent, error) {
	payload, from, to, err := s.versions.Upgrade(eventType, data)
	if err != nil {
		return nil, err
	}
	if from != to {
		s.logger.Debug("Upgraded stale event payload",
			zap.String("event_type", eventType),
			zap.Int("from_version", from),
			zap.Int("to_version", to))
	}

	eventPtr, ok := s.versions.instantiate(eventType)
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}
	if err := json.Unmarshal(payload, eventPtr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	event, ok := eventPtr.(shared.DomainEvent)
	if !ok {
		return nil, fmt.Errorf("deserialized object does not implement DomainEvent")
	}
	return event, nil
}

// IsRegistered checks if an event type is registered
func (s *EventSerializer) IsRegistered(eventType string) bool {
	return s.versions.IsRegistered(eventType)
}

// RegisteredTypes returns all registered event types
func (s *EventSerializer) RegisteredTypes() []string {
	return s.versions.RegisteredTypes()
}
