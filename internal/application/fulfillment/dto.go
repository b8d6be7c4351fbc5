package fulfillment

import (
	"time"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/fulfillment"
)

// CreateOrderRequest opens a shipping order over issued vouchers
type CreateOrderRequest struct {
	CustomerID           uuid.UUID   `json:"customer_id" binding:"required"`
	DestinationChannel   string      `json:"destination_channel" binding:"required"`
	DestinationGeography string      `json:"destination_geography" binding:"required"`
	PackagingPreference  string      `json:"packaging_preference" binding:"omitempty,oneof=any preserve_cases"`
	VoucherIDs           []uuid.UUID `json:"voucher_ids" binding:"required,min=1"`
}

// BindLineRequest assigns a concrete bottle to a line. WMSEventID is
// set when the assignment comes from a warehouse pick message; binding
// failures then queue an exception instead of failing the call.
type BindLineRequest struct {
	SerialNumber string     `json:"serial_number" binding:"required"`
	ConfirmedBy  *uuid.UUID `json:"confirmed_by"`
	WMSEventID   *string    `json:"wms_event_id"`
}

// ConfirmPickRequest advances an early-bound line on the pick event
type ConfirmPickRequest struct {
	WMSEventID *string `json:"wms_event_id"`
}

// ShipLineRequest ships a bound line
type ShipLineRequest struct {
	WMSEventID *string `json:"wms_event_id"`
}

// ResolveExceptionRequest closes an order exception after review
type ResolveExceptionRequest struct {
	ResolvedBy uuid.UUID `json:"resolved_by" binding:"required"`
	Resolution string    `json:"resolution" binding:"required"`
}

// LineResponse represents an order line in API responses
type LineResponse struct {
	ID                 uuid.UUID  `json:"id"`
	ShippingOrderID    uuid.UUID  `json:"shipping_order_id"`
	VoucherID          uuid.UUID  `json:"voucher_id"`
	AllocationID       uuid.UUID  `json:"allocation_id"`
	Status             string     `json:"status"`
	BoundBottleSerial  *string    `json:"bound_bottle_serial,omitempty"`
	BoundCaseID        *uuid.UUID `json:"bound_case_id,omitempty"`
	EarlyBindingSerial *string    `json:"early_binding_serial,omitempty"`
	BindingConfirmedAt *time.Time `json:"binding_confirmed_at,omitempty"`
	BindingConfirmedBy *uuid.UUID `json:"binding_confirmed_by,omitempty"`
}

// OrderResponse represents a shipping order in API responses
type OrderResponse struct {
	ID                   uuid.UUID      `json:"id"`
	CustomerID           uuid.UUID      `json:"customer_id"`
	DestinationChannel   string         `json:"destination_channel"`
	DestinationGeography string         `json:"destination_geography"`
	PackagingPreference  string         `json:"packaging_preference"`
	Status               string         `json:"status"`
	ShippedAt            *time.Time     `json:"shipped_at,omitempty"`
	Lines                []LineResponse `json:"lines,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
}

// ExceptionResponse represents an order exception in API responses
type ExceptionResponse struct {
	ID            uuid.UUID  `json:"id"`
	OrderID       uuid.UUID  `json:"order_id"`
	LineID        *uuid.UUID `json:"line_id,omitempty"`
	ExceptionType string     `json:"exception_type"`
	Status        string     `json:"status"`
	Detail        string     `json:"detail"`
	WMSEventID    *string    `json:"wms_event_id,omitempty"`
	ResolvedBy    *uuid.UUID `json:"resolved_by,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	Resolution    string     `json:"resolution,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// BindResult carries the outcome of a WMS-driven binding step. Exactly
// one of Line and Exception is set: an exception means the event was
// consumed but the step could not be applied and is parked for review.
type BindResult struct {
	Line      *LineResponse      `json:"line,omitempty"`
	Exception *ExceptionResponse `json:"exception,omitempty"`
}

// ToLineResponse converts a line to its response form
func ToLineResponse(l *fulfillment.ShippingOrderLine) *LineResponse {
	return &LineResponse{
		ID:                 l.ID,
		ShippingOrderID:    l.ShippingOrderID,
		VoucherID:          l.VoucherID,
		AllocationID:       l.AllocationID,
		Status:             string(l.Status),
		BoundBottleSerial:  l.BoundBottleSerial,
		BoundCaseID:        l.BoundCaseID,
		EarlyBindingSerial: l.EarlyBindingSerial,
		BindingConfirmedAt: l.BindingConfirmedAt,
		BindingConfirmedBy: l.BindingConfirmedBy,
	}
}

// ToOrderResponse converts an order to its response form
func ToOrderResponse(o *fulfillment.ShippingOrder) *OrderResponse {
	resp := &OrderResponse{
		ID:                   o.ID,
		CustomerID:           o.CustomerID,
		DestinationChannel:   o.DestinationChannel,
		DestinationGeography: o.DestinationGeography,
		PackagingPreference:  string(o.PackagingPreference),
		Status:               string(o.Status),
		ShippedAt:            o.ShippedAt,
		CreatedAt:            o.CreatedAt,
	}
	for i := range o.Lines {
		resp.Lines = append(resp.Lines, *ToLineResponse(&o.Lines[i]))
	}
	return resp
}

// ToExceptionResponse converts an exception to its response form
func ToExceptionResponse(e *fulfillment.ShippingOrderException) *ExceptionResponse {
	return &ExceptionResponse{
		ID:            e.ID,
		OrderID:       e.ShippingOrderID,
		LineID:        e.LineID,
		ExceptionType: string(e.ExceptionType),
		Status:        string(e.Status),
		Detail:        e.Detail,
		WMSEventID:    e.WMSEventID,
		ResolvedBy:    e.ResolvedBy,
		ResolvedAt:    e.ResolvedAt,
		Resolution:    e.Resolution,
		CreatedAt:     e.CreatedAt,
	}
}
