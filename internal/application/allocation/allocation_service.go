package allocation

import (
	"context"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/allocation"
	"github.com/vintrade/backend/internal/domain/shared"
	"github.com/vintrade/backend/internal/domain/shared/valueobject"
)

// AllocationService handles allocation lifecycle operations
type AllocationService struct {
	allocationRepo allocation.Repository
	eventPublisher shared.EventPublisher
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(allocationRepo allocation.Repository) *AllocationService {
	return &AllocationService{allocationRepo: allocationRepo}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *AllocationService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *AllocationService) publishDomainEvents(ctx context.Context, a *allocation.Allocation) {
	if s.eventPublisher == nil {
		return
	}
	events := a.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	a.ClearDomainEvents()
}

// Create registers a new allocation, optionally activating it immediately
func (s *AllocationService) Create(ctx context.Context, req *CreateAllocationRequest) (*AllocationResponse, error) {
	productRef, err := buildProductRef(req)
	if err != nil {
		return nil, err
	}

	a, err := allocation.NewAllocation(
		productRef,
		allocation.SourceType(req.SourceType),
		allocation.SupplyForm(req.SupplyForm),
		req.TotalQuantity,
		req.Serialization,
	)
	if err != nil {
		return nil, err
	}

	if req.ActivateNow {
		if err := a.Activate(); err != nil {
			return nil, err
		}
	}

	if err := s.allocationRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, a)
	return ToAllocationResponse(a), nil
}

// Activate opens a draft allocation for sale
func (s *AllocationService) Activate(ctx context.Context, id uuid.UUID) (*AllocationResponse, error) {
	a, err := s.allocationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Activate(); err != nil {
		return nil, err
	}
	if err := s.allocationRepo.SaveWithLock(ctx, a); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, a)
	return ToAllocationResponse(a), nil
}

// Close permanently ends sale from an allocation
func (s *AllocationService) Close(ctx context.Context, id uuid.UUID) (*AllocationResponse, error) {
	a, err := s.allocationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Close(); err != nil {
		return nil, err
	}
	if err := s.allocationRepo.SaveWithLock(ctx, a); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, a)
	return ToAllocationResponse(a), nil
}

// GetByID retrieves an allocation
func (s *AllocationService) GetByID(ctx context.Context, id uuid.UUID) (*AllocationResponse, error) {
	a, err := s.allocationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToAllocationResponse(a), nil
}

// List retrieves allocations matching the filter
func (s *AllocationService) List(ctx context.Context, f *AllocationListFilter) (*shared.Paginated[AllocationResponse], error) {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}

	var (
		items []allocation.Allocation
		err   error
	)
	if f.Status != "" {
		items, err = s.allocationRepo.FindByStatus(ctx, allocation.Status(f.Status), filter)
	} else {
		items, err = s.allocationRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.allocationRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]AllocationResponse, len(items))
	for i := range items {
		responses[i] = *ToAllocationResponse(&items[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

func buildProductRef(req *CreateAllocationRequest) (valueobject.ProductReference, error) {
	switch allocation.SupplyForm(req.SupplyForm) {
	case allocation.SupplyLiquid:
		if req.LiquidProductID == nil {
			return valueobject.ProductReference{}, shared.NewDomainError("INVALID_PRODUCT",
				"Liquid supply requires a liquid product ID")
		}
		return valueobject.NewLiquidProduct(*req.LiquidProductID)
	default:
		if req.WineVariantID == nil || req.FormatID == nil {
			return valueobject.ProductReference{}, shared.NewDomainError("INVALID_PRODUCT",
				"Bottled supply requires a wine variant and format")
		}
		return valueobject.NewBottleSKU(*req.WineVariantID, *req.FormatID)
	}
}
