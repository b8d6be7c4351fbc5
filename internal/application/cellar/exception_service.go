package cellar

import (
	"context"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/cellar"
	"github.com/vintrade/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ExceptionService manages the operational anomaly review queue
type ExceptionService struct {
	exceptionRepo  cellar.ExceptionRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewExceptionService creates a new ExceptionService
func NewExceptionService(exceptionRepo cellar.ExceptionRepository, logger *zap.Logger) *ExceptionService {
	return &ExceptionService{
		exceptionRepo: exceptionRepo,
		logger:        logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ExceptionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Raise queues an anomaly reported by an operator
func (s *ExceptionService) Raise(ctx context.Context, req *RaiseExceptionRequest) (*ExceptionResponse, error) {
	exc, err := cellar.NewInventoryException(
		cellar.ExceptionType(req.ExceptionType),
		req.Detail,
		cellar.ExceptionRefs{
			BottleID:   req.BottleID,
			CaseID:     req.CaseID,
			BatchID:    req.BatchID,
			WMSEventID: req.WMSEventID,
		})
	if err != nil {
		return nil, err
	}
	if err := s.exceptionRepo.Create(ctx, exc); err != nil {
		return nil, err
	}

	s.logger.Info("Raised inventory exception",
		zap.String("exception_id", exc.ID.String()),
		zap.String("exception_type", string(exc.ExceptionType)),
	)
	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, exc.GetDomainEvents()...)
	}
	return ToExceptionResponse(exc), nil
}

// Resolve closes an exception after review
func (s *ExceptionService) Resolve(ctx context.Context, id uuid.UUID, req *ResolveExceptionRequest) (*ExceptionResponse, error) {
	exc, err := s.exceptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := exc.Resolve(req.ResolvedBy, req.Resolution); err != nil {
		return nil, err
	}
	if err := s.exceptionRepo.Save(ctx, exc); err != nil {
		return nil, err
	}
	return ToExceptionResponse(exc), nil
}

// GetByID retrieves an exception
func (s *ExceptionService) GetByID(ctx context.Context, id uuid.UUID) (*ExceptionResponse, error) {
	exc, err := s.exceptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToExceptionResponse(exc), nil
}

// ListOpen returns the open review queue, oldest first
func (s *ExceptionService) ListOpen(ctx context.Context, filter shared.Filter) (*shared.Paginated[ExceptionResponse], error) {
	excs, err := s.exceptionRepo.FindOpen(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.exceptionRepo.CountOpen(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ExceptionResponse, len(excs))
	for i := range excs {
		items[i] = *ToExceptionResponse(&excs[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}
