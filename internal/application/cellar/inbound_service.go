package cellar

import (
	"context"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/allocation"
	"github.com/vintrade/backend/internal/domain/cellar"
	"github.com/vintrade/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InboundService handles batch registration, serialization and
// serialization corrections
type InboundService struct {
	scope          TransactionScope
	allocationRepo allocation.Repository
	batchRepo      cellar.InboundBatchRepository
	bottleRepo     cellar.BottleRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewInboundService creates a new InboundService
func NewInboundService(
	scope TransactionScope,
	allocationRepo allocation.Repository,
	batchRepo cellar.InboundBatchRepository,
	bottleRepo cellar.BottleRepository,
	logger *zap.Logger,
) *InboundService {
	return &InboundService{
		scope:          scope,
		allocationRepo: allocationRepo,
		batchRepo:      batchRepo,
		bottleRepo:     bottleRepo,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *InboundService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *InboundService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

// RegisterBatch records a received delivery. The allocation linkage
// comes from procurement and is trusted; only its existence is checked.
func (s *InboundService) RegisterBatch(ctx context.Context, req *RegisterBatchRequest) (*BatchResponse, error) {
	if _, err := s.allocationRepo.FindByID(ctx, req.AllocationID); err != nil {
		return nil, err
	}

	b, err := cellar.NewInboundBatch(req.AllocationID, req.LocationID, req.PurchaseOrderRef, req.ExpectedQuantity)
	if err != nil {
		return nil, err
	}
	if err := s.batchRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return ToBatchResponse(b), nil
}

// GetBatch retrieves an inbound batch
func (s *InboundService) GetBatch(ctx context.Context, id uuid.UUID) (*BatchResponse, error) {
	b, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToBatchResponse(b), nil
}

// SerializeBatch turns a received batch into serialized bottles, and
// sealed cases when a case configuration is given. A count mismatch
// does not fail the batch: the units that exist serialize and a
// serialization_mismatch exception is queued for review.
func (s *InboundService) SerializeBatch(ctx context.Context, batchID uuid.UUID, req *SerializeBatchRequest) (*SerializeBatchResponse, error) {
	ownership := cellar.OwnershipType(req.Ownership)
	if req.CaseConfigurationID != nil && req.CaseSize < 2 {
		return nil, shared.NewDomainError("INVALID_CASE_SIZE", "Case size must be at least 2")
	}

	var (
		resp      *SerializeBatchResponse
		batch     *cellar.InboundBatch
		exception *cellar.InventoryException
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		b, err := repos.BatchRepo().FindByID(ctx, batchID)
		if err != nil {
			return err
		}
		batch = b

		bottles := make([]*cellar.SerializedBottle, 0, len(req.Serials))
		var cases []*cellar.PhysicalCase
		var currentCase *cellar.PhysicalCase

		for i, serial := range req.Serials {
			bottle, err := cellar.NewSerializedBottle(serial, req.WineVariantID, req.FormatID,
				b.AllocationID, b.ID, b.LocationID, ownership)
			if err != nil {
				return err
			}

			if req.CaseConfigurationID != nil {
				if i%req.CaseSize == 0 && len(req.Serials)-i >= req.CaseSize {
					currentCase, err = cellar.NewPhysicalCase(*req.CaseConfigurationID, b.AllocationID, b.ID, b.LocationID)
					if err != nil {
						return err
					}
					cases = append(cases, currentCase)
				}
				if currentCase != nil && i < (len(cases))*req.CaseSize {
					bottle.AssignToCase(currentCase.ID)
				}
			}
			bottles = append(bottles, bottle)
		}

		if err := b.MarkSerialized(int64(len(req.Serials))); err != nil {
			return err
		}

		if len(cases) > 0 {
			if err := repos.CaseRepo().CreateBatch(ctx, cases); err != nil {
				return err
			}
		}
		if err := repos.BottleRepo().CreateBatch(ctx, bottles); err != nil {
			return err
		}
		if err := repos.BatchRepo().Save(ctx, b); err != nil {
			return err
		}

		if int64(len(req.Serials)) != b.ExpectedQuantity {
			exc, err := cellar.NewInventoryException(cellar.ExceptionSerializationMismatch,
				serializationMismatchDetail(b, len(req.Serials)),
				cellar.ExceptionRefs{BatchID: &b.ID})
			if err != nil {
				return err
			}
			if err := repos.ExceptionRepo().Create(ctx, exc); err != nil {
				return err
			}
			exception = exc
		}

		resp = &SerializeBatchResponse{
			Batch:   ToBatchResponse(b),
			Bottles: make([]BottleResponse, len(bottles)),
		}
		for i, bottle := range bottles {
			resp.Bottles[i] = *ToBottleResponse(bottle)
		}
		for _, c := range cases {
			resp.Cases = append(resp.Cases, c.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Serialized inbound batch",
		zap.String("batch_id", batchID.String()),
		zap.String("allocation_id", batch.AllocationID.String()),
		zap.Int("bottles", len(resp.Bottles)),
		zap.Int("cases", len(resp.Cases)),
	)
	s.publish(ctx, cellar.NewBatchSerializedEvent(batch))
	if exception != nil {
		resp.ShortfallException = &exception.ID
		s.publish(ctx, exception.GetDomainEvents()...)
	}
	return resp, nil
}

// CorrectSerialization retires a wrongly recorded serial and creates
// the corrected bottle under the same lineage. The bad record stays,
// terminal and cross-linked, so the audit trail survives.
func (s *InboundService) CorrectSerialization(ctx context.Context, bottleID uuid.UUID, req *CorrectSerializationRequest) (*BottleResponse, error) {
	var corrected *cellar.SerializedBottle
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		bad, err := repos.BottleRepo().FindByID(ctx, bottleID)
		if err != nil {
			return err
		}

		replacement, err := cellar.NewSerializedBottle(req.CorrectSerial,
			bad.WineVariantID, bad.FormatID,
			bad.AllocationID, bad.InboundBatchID, bad.CurrentLocationID,
			bad.OwnershipType)
		if err != nil {
			return err
		}
		if err := bad.MarkMisSerialized(replacement.ID); err != nil {
			return err
		}

		if err := repos.BottleRepo().CreateBatch(ctx, []*cellar.SerializedBottle{replacement}); err != nil {
			return err
		}
		if err := repos.BottleRepo().SaveWithLock(ctx, bad); err != nil {
			return err
		}

		exc, err := cellar.NewInventoryException(cellar.ExceptionMisSerialization,
			"Serial "+bad.SerialNumber+" was recorded in error and replaced by "+req.CorrectSerial,
			cellar.ExceptionRefs{BottleID: &bad.ID})
		if err != nil {
			return err
		}
		if err := repos.ExceptionRepo().Create(ctx, exc); err != nil {
			return err
		}

		corrected = replacement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToBottleResponse(corrected), nil
}

func serializationMismatchDetail(b *cellar.InboundBatch, got int) string {
	if int64(got) < b.ExpectedQuantity {
		return "Batch " + b.ID.String() + " serialized short of the received quantity"
	}
	return "Batch " + b.ID.String() + " serialized more units than received"
}
