package cellar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/cellar"
	"github.com/vintrade/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// defaultWMSEventTTL is how long processed WMS event ids are remembered.
const defaultWMSEventTTL = 7 * 24 * time.Hour

// MovementService records physical inventory movements and applies the
// bottle and case state transitions they imply. WMS events are
// deduplicated by their event id so redelivered messages replay the
// already recorded movement.
type MovementService struct {
	scope          TransactionScope
	movementRepo   cellar.MovementRepository
	idempotency    shared.IdempotencyStore
	eventPublisher shared.EventPublisher
	wmsEventTTL    time.Duration
	logger         *zap.Logger
}

// NewMovementService creates a new MovementService
func NewMovementService(
	scope TransactionScope,
	movementRepo cellar.MovementRepository,
	idempotency shared.IdempotencyStore,
	logger *zap.Logger,
) *MovementService {
	return &MovementService{
		scope:        scope,
		movementRepo: movementRepo,
		idempotency:  idempotency,
		wmsEventTTL:  defaultWMSEventTTL,
		logger:       logger,
	}
}

// SetWMSEventTTL overrides how long processed WMS event ids are remembered.
func (s *MovementService) SetWMSEventTTL(ttl time.Duration) {
	if ttl > 0 {
		s.wmsEventTTL = ttl
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *MovementService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ListMovements returns a page of the movement ledger. When bottleID
// is set only movements touching that bottle are returned.
func (s *MovementService) ListMovements(ctx context.Context, bottleID *uuid.UUID, filter shared.Filter) ([]MovementResponse, error) {
	var (
		movements []cellar.InventoryMovement
		err       error
	)
	if bottleID != nil {
		movements, err = s.movementRepo.FindByBottle(ctx, *bottleID, filter)
	} else {
		movements, err = s.movementRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	out := make([]MovementResponse, len(movements))
	for i := range movements {
		out[i] = *ToMovementResponse(&movements[i], false)
	}
	return out, nil
}

// RecordMovement records a movement and moves the referenced bottles
// and cases through their state machines. For WMS-triggered movements
// a unit in an unexpected state does not fail the call: the movement
// is still recorded and a wms_discrepancy exception is queued. For
// operator-triggered movements the same condition is an error.
func (s *MovementService) RecordMovement(ctx context.Context, req *RecordMovementRequest) (*MovementResponse, error) {
	if req.WMSEventID != nil {
		if existing, ok, err := s.findReplayed(ctx, *req.WMSEventID); err != nil {
			return nil, err
		} else if ok {
			return ToMovementResponse(existing, true), nil
		}
	}

	items := make([]cellar.MovementItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = cellar.MovementItemInput{BottleID: it.BottleID, CaseID: it.CaseID, Quantity: it.Quantity}
	}
	movement, err := cellar.NewInventoryMovement(
		cellar.MovementType(req.MovementType),
		cellar.MovementTrigger(req.Trigger),
		req.SourceLocationID, req.DestinationLocationID,
		req.CustodyChanged, req.WMSEventID, req.RecordedBy, items)
	if err != nil {
		return nil, err
	}

	var discrepancies []*cellar.InventoryException
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		for i := range movement.Items {
			item := &movement.Items[i]
			excs, err := s.applyItem(ctx, repos, movement, item)
			if err != nil {
				return err
			}
			discrepancies = append(discrepancies, excs...)
		}
		for _, exc := range discrepancies {
			if err := repos.ExceptionRepo().Create(ctx, exc); err != nil {
				return err
			}
		}
		return repos.MovementRepo().Create(ctx, movement)
	})
	if err != nil {
		// Lost the insert race on the wms_event_id unique index: the
		// first delivery recorded the movement, replay it.
		if errors.Is(err, shared.ErrAlreadyExists) && req.WMSEventID != nil {
			existing, findErr := s.movementRepo.FindByWMSEventID(ctx, *req.WMSEventID)
			if findErr != nil {
				return nil, findErr
			}
			return ToMovementResponse(existing, true), nil
		}
		return nil, err
	}

	if req.WMSEventID != nil && s.idempotency != nil {
		if _, err := s.idempotency.MarkProcessed(ctx, wmsEventKey(*req.WMSEventID), s.wmsEventTTL); err != nil {
			s.logger.Warn("Failed to mark WMS event as processed",
				zap.String("wms_event_id", *req.WMSEventID),
				zap.Error(err))
		}
	}

	s.logger.Info("Recorded inventory movement",
		zap.String("movement_id", movement.ID.String()),
		zap.String("movement_type", string(movement.MovementType)),
		zap.String("trigger", string(movement.Trigger)),
		zap.Int("items", len(movement.Items)),
		zap.Int("discrepancies", len(discrepancies)),
	)

	if s.eventPublisher != nil {
		events := []shared.DomainEvent{cellar.NewMovementRecordedEvent(movement)}
		for _, exc := range discrepancies {
			events = append(events, exc.GetDomainEvents()...)
		}
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	return ToMovementResponse(movement, false), nil
}

// findReplayed checks the fast dedupe path before any work happens
func (s *MovementService) findReplayed(ctx context.Context, wmsEventID string) (*cellar.InventoryMovement, bool, error) {
	if s.idempotency != nil {
		processed, err := s.idempotency.IsProcessed(ctx, wmsEventKey(wmsEventID))
		if err != nil {
			s.logger.Warn("Idempotency lookup failed, falling back to database",
				zap.String("wms_event_id", wmsEventID),
				zap.Error(err))
		} else if !processed {
			return nil, false, nil
		}
	}
	existing, err := s.movementRepo.FindByWMSEventID(ctx, wmsEventID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return existing, true, nil
}

// applyItem moves one bottle or case for the movement. It returns the
// wms_discrepancy exceptions raised instead of errors when the trigger
// is a WMS event.
func (s *MovementService) applyItem(ctx context.Context, repos TransactionalRepositories, m *cellar.InventoryMovement, item *cellar.MovementItem) ([]*cellar.InventoryException, error) {
	if item.BottleID != nil {
		bottle, err := repos.BottleRepo().FindByID(ctx, *item.BottleID)
		if err != nil {
			return nil, err
		}
		if err := s.applyToBottle(m, bottle); err != nil {
			return s.discrepancyOrError(m, err, cellar.ExceptionRefs{BottleID: item.BottleID, WMSEventID: m.WMSEventID})
		}
		return nil, repos.BottleRepo().SaveWithLock(ctx, bottle)
	}

	c, err := repos.CaseRepo().FindByID(ctx, *item.CaseID)
	if err != nil {
		return nil, err
	}
	var excs []*cellar.InventoryException
	switch m.MovementType {
	case cellar.MovementCaseBreaking:
		c.Break(m.RecordedBy, "manual")
		for i := range c.Bottles {
			c.Bottles[i].RemoveFromCase()
			if err := repos.BottleRepo().SaveWithLock(ctx, &c.Bottles[i]); err != nil {
				return excs, err
			}
		}
	default:
		if m.DestinationLocationID != nil {
			if err := c.MoveTo(*m.DestinationLocationID); err != nil {
				return s.discrepancyOrError(m, err, cellar.ExceptionRefs{CaseID: item.CaseID, WMSEventID: m.WMSEventID})
			}
		}
		for i := range c.Bottles {
			if err := s.applyToBottle(m, &c.Bottles[i]); err != nil {
				more, herr := s.discrepancyOrError(m, err, cellar.ExceptionRefs{BottleID: &c.Bottles[i].ID, WMSEventID: m.WMSEventID})
				if herr != nil {
					return excs, herr
				}
				excs = append(excs, more...)
				continue
			}
			if err := repos.BottleRepo().SaveWithLock(ctx, &c.Bottles[i]); err != nil {
				return excs, err
			}
		}
	}
	return excs, repos.CaseRepo().SaveWithLock(ctx, c)
}

func (s *MovementService) applyToBottle(m *cellar.InventoryMovement, bottle *cellar.SerializedBottle) error {
	switch m.MovementType {
	case cellar.MovementShip:
		return bottle.Ship()
	case cellar.MovementPick:
		return bottle.ReserveForPicking()
	default:
		if m.DestinationLocationID != nil {
			return bottle.MoveTo(*m.DestinationLocationID)
		}
		return nil
	}
}

// discrepancyOrError converts a state transition failure into a
// wms_discrepancy exception for WMS-sourced movements; operator calls
// see the error directly.
func (s *MovementService) discrepancyOrError(m *cellar.InventoryMovement, cause error, refs cellar.ExceptionRefs) ([]*cellar.InventoryException, error) {
	if m.Trigger != cellar.TriggerWMSEvent {
		return nil, cause
	}
	refs.MovementID = &m.ID
	exc, err := cellar.NewInventoryException(cellar.ExceptionWMSDiscrepancy,
		fmt.Sprintf("WMS %s movement could not be applied: %s", m.MovementType, cause.Error()),
		refs)
	if err != nil {
		return nil, err
	}
	return []*cellar.InventoryException{exc}, nil
}

func wmsEventKey(id string) string {
	return "wms:movement:" + id
}
