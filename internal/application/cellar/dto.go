package cellar

import (
	"time"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/cellar"
	csvimport "github.com/vintrade/backend/internal/infrastructure/import"
)

// RegisterBatchRequest represents a received delivery from procurement
type RegisterBatchRequest struct {
	AllocationID     uuid.UUID `json:"allocation_id" binding:"required"`
	LocationID       uuid.UUID `json:"location_id" binding:"required"`
	PurchaseOrderRef string    `json:"purchase_order_ref"`
	ExpectedQuantity int64     `json:"expected_quantity" binding:"required,min=1"`
}

// SerializeBatchRequest represents the serialization of a received batch
type SerializeBatchRequest struct {
	Serials       []string `json:"serials" binding:"required,min=1"`
	WineVariantID uuid.UUID `json:"wine_variant_id" binding:"required"`
	FormatID      uuid.UUID `json:"format_id" binding:"required"`
	Ownership     string    `json:"ownership" binding:"required,oneof=owned consignment custody"`
	// CaseConfigurationID groups the serials into sealed cases of
	// CaseSize bottles each when set
	CaseConfigurationID *uuid.UUID `json:"case_configuration_id"`
	CaseSize            int        `json:"case_size"`
}

// CorrectSerializationRequest replaces a wrongly recorded serial
type CorrectSerializationRequest struct {
	CorrectSerial string `json:"correct_serial" binding:"required"`
}

// RecordMovementRequest represents a physical movement to record
type RecordMovementRequest struct {
	MovementType          string         `json:"movement_type" binding:"required"`
	Trigger               string         `json:"trigger" binding:"required"`
	SourceLocationID      *uuid.UUID     `json:"source_location_id"`
	DestinationLocationID *uuid.UUID     `json:"destination_location_id"`
	CustodyChanged        bool           `json:"custody_changed"`
	WMSEventID            *string        `json:"wms_event_id"`
	RecordedBy            *uuid.UUID     `json:"recorded_by"`
	Items                 []MovementItem `json:"items" binding:"required,min=1,dive"`
}

// MovementItem references one bottle or case to move
type MovementItem struct {
	BottleID *uuid.UUID `json:"bottle_id"`
	CaseID   *uuid.UUID `json:"case_id"`
	Quantity int64      `json:"quantity"`
}

// RaiseExceptionRequest represents an operational anomaly to queue
type RaiseExceptionRequest struct {
	ExceptionType string     `json:"exception_type" binding:"required"`
	Detail        string     `json:"detail" binding:"required"`
	BottleID      *uuid.UUID `json:"bottle_id"`
	CaseID        *uuid.UUID `json:"case_id"`
	BatchID       *uuid.UUID `json:"batch_id"`
	WMSEventID    *string    `json:"wms_event_id"`
}

// ResolveExceptionRequest closes an exception after review
type ResolveExceptionRequest struct {
	ResolvedBy uuid.UUID `json:"resolved_by" binding:"required"`
	Resolution string    `json:"resolution" binding:"required"`
}

// BatchResponse represents an inbound batch in API responses
type BatchResponse struct {
	ID               uuid.UUID  `json:"id"`
	AllocationID     uuid.UUID  `json:"allocation_id"`
	PurchaseOrderRef string     `json:"purchase_order_ref,omitempty"`
	LocationID       uuid.UUID  `json:"location_id"`
	ExpectedQuantity int64      `json:"expected_quantity"`
	SerializedCount  int64      `json:"serialized_count"`
	Status           string     `json:"status"`
	HasShortfall     bool       `json:"has_shortfall"`
	ReceivedAt       time.Time  `json:"received_at"`
	SerializedAt     *time.Time `json:"serialized_at,omitempty"`
}

// BottleResponse represents a serialized bottle in API responses
type BottleResponse struct {
	ID                uuid.UUID  `json:"id"`
	SerialNumber      string     `json:"serial_number"`
	WineVariantID     uuid.UUID  `json:"wine_variant_id"`
	FormatID          uuid.UUID  `json:"format_id"`
	AllocationID      uuid.UUID  `json:"allocation_id"`
	InboundBatchID    uuid.UUID  `json:"inbound_batch_id"`
	CurrentLocationID uuid.UUID  `json:"current_location_id"`
	CaseID            *uuid.UUID `json:"case_id,omitempty"`
	OwnershipType     string     `json:"ownership_type"`
	State             string     `json:"state"`
	CorrectionRef     *uuid.UUID `json:"correction_ref,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// SerializeBatchResponse carries the serialization outcome
type SerializeBatchResponse struct {
	Batch   *BatchResponse   `json:"batch"`
	Bottles []BottleResponse `json:"bottles"`
	Cases   []uuid.UUID      `json:"case_ids,omitempty"`
	// ShortfallException is set when fewer serials arrived than the
	// batch expected
	ShortfallException *uuid.UUID `json:"shortfall_exception_id,omitempty"`
}

// MovementResponse represents a recorded movement. Replayed is true
// when the WMS event was already processed and the existing movement
// is returned.
type MovementResponse struct {
	ID             uuid.UUID `json:"id"`
	MovementType   string    `json:"movement_type"`
	Trigger        string    `json:"trigger"`
	CustodyChanged bool      `json:"custody_changed"`
	WMSEventID     *string   `json:"wms_event_id,omitempty"`
	ItemCount      int       `json:"item_count"`
	OccurredAt     time.Time `json:"occurred_at"`
	Replayed       bool      `json:"replayed"`
}

// ExceptionResponse represents an inventory exception in API responses
type ExceptionResponse struct {
	ID            uuid.UUID  `json:"id"`
	ExceptionType string     `json:"exception_type"`
	Status        string     `json:"status"`
	Detail        string     `json:"detail"`
	BottleID      *uuid.UUID `json:"bottle_id,omitempty"`
	CaseID        *uuid.UUID `json:"case_id,omitempty"`
	BatchID       *uuid.UUID `json:"batch_id,omitempty"`
	WMSEventID    *string    `json:"wms_event_id,omitempty"`
	ResolvedBy    *uuid.UUID `json:"resolved_by,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	Resolution    string     `json:"resolution,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToBatchResponse converts a batch to its response form
func ToBatchResponse(b *cellar.InboundBatch) *BatchResponse {
	return &BatchResponse{
		ID:               b.ID,
		AllocationID:     b.AllocationID,
		PurchaseOrderRef: b.PurchaseOrderRef,
		LocationID:       b.LocationID,
		ExpectedQuantity: b.ExpectedQuantity,
		SerializedCount:  b.SerializedCount,
		Status:           string(b.Status),
		HasShortfall:     b.HasShortfall(),
		ReceivedAt:       b.ReceivedAt,
		SerializedAt:     b.SerializedAt,
	}
}

// ToBottleResponse converts a bottle to its response form
func ToBottleResponse(b *cellar.SerializedBottle) *BottleResponse {
	return &BottleResponse{
		ID:                b.ID,
		SerialNumber:      b.SerialNumber,
		WineVariantID:     b.WineVariantID,
		FormatID:          b.FormatID,
		AllocationID:      b.AllocationID,
		InboundBatchID:    b.InboundBatchID,
		CurrentLocationID: b.CurrentLocationID,
		CaseID:            b.CaseID,
		OwnershipType:     string(b.OwnershipType),
		State:             string(b.State),
		CorrectionRef:     b.CorrectionRef,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// ToMovementResponse converts a movement to its response form
func ToMovementResponse(m *cellar.InventoryMovement, replayed bool) *MovementResponse {
	return &MovementResponse{
		ID:             m.ID,
		MovementType:   string(m.MovementType),
		Trigger:        string(m.Trigger),
		CustodyChanged: m.CustodyChanged,
		WMSEventID:     m.WMSEventID,
		ItemCount:      len(m.Items),
		OccurredAt:     m.OccurredAt,
		Replayed:       replayed,
	}
}

// ToExceptionResponse converts an exception to its response form
func ToExceptionResponse(e *cellar.InventoryException) *ExceptionResponse {
	return &ExceptionResponse{
		ID:            e.ID,
		ExceptionType: string(e.ExceptionType),
		Status:        string(e.Status),
		Detail:        e.Detail,
		BottleID:      e.BottleID,
		CaseID:        e.CaseID,
		BatchID:       e.BatchID,
		WMSEventID:    e.WMSEventID,
		ResolvedBy:    e.ResolvedBy,
		ResolvedAt:    e.ResolvedAt,
		Resolution:    e.Resolution,
		CreatedAt:     e.CreatedAt,
	}
}

// SerialManifestRequest carries the per-file serialization metadata
// accompanying a serial manifest upload
type SerialManifestRequest struct {
	WineVariantID       uuid.UUID  `form:"wine_variant_id" binding:"required"`
	FormatID            uuid.UUID  `form:"format_id" binding:"required"`
	Ownership           string     `form:"ownership" binding:"required,oneof=owned consignment custody"`
	CaseConfigurationID *uuid.UUID `form:"case_configuration_id"`
	CaseSize            int        `form:"case_size"`
}

// ManifestImportResponse summarizes a batch manifest import
type ManifestImportResponse struct {
	SessionID uuid.UUID            `json:"session_id"`
	TotalRows int                  `json:"total_rows"`
	ErrorRows int                  `json:"error_rows"`
	Batches   []uuid.UUID          `json:"batches"`
	Errors    []csvimport.RowError `json:"errors,omitempty"`
}
