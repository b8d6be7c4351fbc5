package allocation

import (
	"time"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/allocation"
)

// CreateAllocationRequest represents a request to create an allocation
type CreateAllocationRequest struct {
	WineVariantID   *uuid.UUID `json:"wine_variant_id"`
	FormatID        *uuid.UUID `json:"format_id"`
	LiquidProductID *uuid.UUID `json:"liquid_product_id"`
	SourceType      string     `json:"source_type" binding:"required"`
	SupplyForm      string     `json:"supply_form" binding:"required"`
	TotalQuantity   int64      `json:"total_quantity" binding:"required,min=1"`
	Serialization   bool       `json:"serialization_required"`
	ActivateNow     bool       `json:"activate_now"`
}

// AllocationResponse represents an allocation in API responses
type AllocationResponse struct {
	ID                    uuid.UUID  `json:"id"`
	ProductRef            string     `json:"product_ref"`
	SourceType            string     `json:"source_type"`
	SupplyForm            string     `json:"supply_form"`
	TotalQuantity         int64      `json:"total_quantity"`
	SoldQuantity          int64      `json:"sold_quantity"`
	RemainingQuantity     int64      `json:"remaining_quantity"`
	SerializationRequired bool       `json:"serialization_required"`
	Status                string     `json:"status"`
	ClosedAt              *time.Time `json:"closed_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	Version               int        `json:"version"`
}

// AllocationListFilter represents filter options for allocation lists
type AllocationListFilter struct {
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// ToAllocationResponse converts an allocation to its response form
func ToAllocationResponse(a *allocation.Allocation) *AllocationResponse {
	return &AllocationResponse{
		ID:                    a.ID,
		ProductRef:            a.ProductRef.String(),
		SourceType:            string(a.SourceType),
		SupplyForm:            string(a.SupplyForm),
		TotalQuantity:         a.TotalQuantity,
		SoldQuantity:          a.SoldQuantity,
		RemainingQuantity:     a.Remaining(),
		SerializationRequired: a.SerializationRequired,
		Status:                string(a.Status),
		ClosedAt:              a.ClosedAt,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
		Version:               a.Version,
	}
}
