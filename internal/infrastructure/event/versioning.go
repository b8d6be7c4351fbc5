package event

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/vintrade/backend/internal/domain/shared"
)

// EventUpgrader rewrites an event payload from one wire schema version
// to the next. Upgraders are sequential: each one reads version N and
// produces version N+1.
type EventUpgrader interface {
	// SourceVersion is the schema version this upgrader reads
	SourceVersion() int
	// Upgrade transforms the raw JSON payload to the next version
	Upgrade(payload []byte) ([]byte, error)
}

// versionedEvent holds one event type's current Go shape and the chain
// that lifts stored payloads up to it
type versionedEvent struct {
	currentVersion int
	goType         reflect.Type
	upgraders      map[int]EventUpgrader
}

// VersionRegistry tracks the wire schema of every event type the
// outbox carries. Most events sit at version 1; the ones whose payload
// shape changed register the upgrader chain alongside.
type VersionRegistry struct {
	mu     sync.RWMutex
	events map[string]*versionedEvent
}

// NewVersionRegistry creates an empty version registry
func NewVersionRegistry() *VersionRegistry {
	return &VersionRegistry{events: make(map[string]*versionedEvent)}
}

// RegisterCurrent registers an event type whose payload has never
// changed shape (version 1, no upgraders)
func (r *VersionRegistry) RegisterCurrent(eventType string, instance shared.DomainEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[eventType] = &versionedEvent{
		currentVersion: 1,
		goType:         structTypeOf(instance),
		upgraders:      map[int]EventUpgrader{},
	}
}

// RegisterVersioned registers an event type at currentVersion together
// with the upgraders lifting every older payload to it. The chain must
// be gapless from version 1.
func (r *VersionRegistry) RegisterVersioned(eventType string, currentVersion int, instance shared.DomainEvent, upgraders ...EventUpgrader) error {
	chain := make(map[int]EventUpgrader, len(upgraders))
	for _, u := range upgraders {
		chain[u.SourceVersion()] = u
	}
	for v := 1; v < currentVersion; v++ {
		if _, ok := chain[v]; !ok {
			return fmt.Errorf("event type %s: missing upgrader for version %d -> %d", eventType, v, v+1)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[eventType] = &versionedEvent{
		currentVersion: currentVersion,
		goType:         structTypeOf(instance),
		upgraders:      chain,
	}
	return nil
}

// CurrentVersion returns the registered schema version for an event type
func (r *VersionRegistry) CurrentVersion(eventType string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ev, ok := r.events[eventType]
	if !ok {
		return 0, false
	}
	return ev.currentVersion, true
}

// IsRegistered checks if an event type is registered
func (r *VersionRegistry) IsRegistered(eventType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.events[eventType]
	return ok
}

// RegisteredTypes returns all registered event types
func (r *VersionRegistry) RegisteredTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.events))
	for t := range r.events {
		types = append(types, t)
	}
	return types
}

// Upgrade lifts a payload to the event type's current schema version.
// A payload already at the current version passes through untouched.
// Returns the upgraded payload, the version it came in at, and the
// version it left at.
func (r *VersionRegistry) Upgrade(eventType string, payload []byte) ([]byte, int, int, error) {
	r.mu.RLock()
	ev, ok := r.events[eventType]
	r.mu.RUnlock()
	if !ok {
		return nil, 0, 0, fmt.Errorf("unknown event type: %s", eventType)
	}

	from := ExtractVersion(payload)
	if from >= ev.currentVersion {
		return payload, from, from, nil
	}

	out := payload
	var err error
	for v := from; v < ev.currentVersion; v++ {
		u, ok := ev.upgraders[v]
		if !ok {
			return nil, from, v, fmt.Errorf("event type %s: missing upgrader for version %d -> %d", eventType, v, v+1)
		}
		out, err = u.Upgrade(out)
		if err != nil {
			return nil, from, v, fmt.Errorf("event type %s: upgrade v%d -> v%d: %w", eventType, v, v+1, err)
		}
	}
	return out, from, ev.currentVersion, nil
}

// instantiate returns a fresh pointer to the event type's current Go
// shape, ready to unmarshal into
func (r *VersionRegistry) instantiate(eventType string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ev, ok := r.events[eventType]
	if !ok {
		return nil, false
	}
	return reflect.New(ev.goType).Interface(), true
}

func structTypeOf(instance shared.DomainEvent) reflect.Type {
	t := reflect.TypeOf(instance)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// ExtractVersion reads the schema_version field from a raw payload.
// Payloads written before versioning existed carry no field and count
// as version 1.
func ExtractVersion(payload []byte) int {
	var probe struct {
		SchemaVersion int `json:"schema_version"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return 1
	}
	if probe.SchemaVersion == 0 {
		return 1
	}
	return probe.SchemaVersion
}

// fieldUpgrader applies a map-level transform to the payload and stamps
// the target schema version
type fieldUpgrader struct {
	source    int
	transform func(data map[string]any) (map[string]any, error)
}

// NewFieldUpgrader creates an upgrader from sourceVersion to the next
// version by transforming the decoded payload map
func NewFieldUpgrader(sourceVersion int, transform func(data map[string]any) (map[string]any, error)) EventUpgrader {
	return &fieldUpgrader{source: sourceVersion, transform: transform}
}

func (u *fieldUpgrader) SourceVersion() int { return u.source }

func (u *fieldUpgrader) Upgrade(payload []byte) ([]byte, error) {
	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	out, err := u.transform(data)
	if err != nil {
		return nil, err
	}
	out["schema_version"] = u.source + 1
	return json.Marshal(out)
}

// RenameFieldUpgrader moves a payload field to a new key
func RenameFieldUpgrader(sourceVersion int, oldName, newName string) EventUpgrader {
	return NewFieldUpgrader(sourceVersion, func(data map[string]any) (map[string]any, error) {
		if v, ok := data[oldName]; ok {
			data[newName] = v
			delete(data, oldName)
		}
		return data, nil
	})
}

// AddFieldUpgrader backfills a field that did not exist in the older schema
func AddFieldUpgrader(sourceVersion int, name string, defaultValue any) EventUpgrader {
	return NewFieldUpgrader(sourceVersion, func(data map[string]any) (map[string]any, error) {
		if _, ok := data[name]; !ok {
			data[name] = defaultValue
		}
		return data, nil
	})
}

// RemoveFieldUpgrader drops a field the newer schema no longer carries
func RemoveFieldUpgrader(sourceVersion int, name string) EventUpgrader {
	return NewFieldUpgrader(sourceVersion, func(data map[string]any) (map[string]any, error) {
		delete(data, name)
		return data, nil
	})
}
