package event

import (
	"context"

	"github.com/vintrade/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// OutboxEventPublisher implements shared.EventPublisher by persisting
// events to the outbox table. The OutboxProcessor later reads them and
// delivers them to the in-process bus, so downstream consumers see an
// event exactly when its row is marked processed.
type OutboxEventPublisher struct {
	db        *gorm.DB
	publisher *OutboxPublisher
}

// NewOutboxEventPublisher creates a new OutboxEventPublisher.
func NewOutboxEventPublisher(db *gorm.DB, serializer *EventSerializer) *OutboxEventPublisher {
	return &OutboxEventPublisher{
		db:        db,
		publisher: NewOutboxPublisher(serializer),
	}
}

// Publish writes the events to the outbox table in one transaction.
func (p *OutboxEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return p.publisher.PublishWithTx(ctx, tx, events...)
	})
}

var _ shared.EventPublisher = (*OutboxEventPublisher)(nil)
