package trading

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vintrade/backend/internal/domain/entitlement"
)

// IssueVouchersRequest represents a sale event turned into vouchers
type IssueVouchersRequest struct {
	AllocationID  uuid.UUID        `json:"allocation_id" binding:"required"`
	CustomerID    uuid.UUID        `json:"customer_id" binding:"required"`
	Quantity      int              `json:"quantity" binding:"required,min=1"`
	SaleReference string           `json:"sale_reference" binding:"required"`
	SellableSKUID *uuid.UUID       `json:"sellable_sku_id"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	Tradable      bool             `json:"tradable"`
	Giftable      bool             `json:"giftable"`
	// SoldAsCase groups the issued vouchers under one case entitlement
	SoldAsCase bool `json:"sold_as_case"`
}

// IssueVouchersResponse carries the voucher set for a sale reference.
// Replayed is true when the set already existed and was returned
// unchanged.
type IssueVouchersResponse struct {
	Vouchers []VoucherResponse `json:"vouchers"`
	Replayed bool              `json:"replayed"`
}

// VoucherResponse represents a voucher in API responses
type VoucherResponse struct {
	ID                uuid.UUID        `json:"id"`
	CustomerID        uuid.UUID        `json:"customer_id"`
	AllocationID      uuid.UUID        `json:"allocation_id"`
	WineVariantID     uuid.UUID        `json:"wine_variant_id"`
	FormatID          uuid.UUID        `json:"format_id"`
	SellableSKUID     *uuid.UUID       `json:"sellable_sku_id,omitempty"`
	CaseEntitlementID *uuid.UUID       `json:"case_entitlement_id,omitempty"`
	LifecycleState    string           `json:"lifecycle_state"`
	Tradable          bool             `json:"tradable"`
	Giftable          bool             `json:"giftable"`
	Suspended         bool             `json:"suspended"`
	RequiresAttention bool             `json:"requires_attention"`
	AttentionReason   string           `json:"attention_reason,omitempty"`
	SaleReference     string           `json:"sale_reference"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
	RedeemedAt        *time.Time       `json:"redeemed_at,omitempty"`
	CancelledAt       *time.Time       `json:"cancelled_at,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	Version           int              `json:"version"`
}

// TransferRequest represents a request to offer a voucher to another customer
type TransferRequest struct {
	ToCustomerID uuid.UUID `json:"to_customer_id" binding:"required"`
}

// TransferResponse represents a voucher transfer in API responses
type TransferResponse struct {
	ID             uuid.UUID  `json:"id"`
	VoucherID      uuid.UUID  `json:"voucher_id"`
	FromCustomerID uuid.UUID  `json:"from_customer_id"`
	ToCustomerID   uuid.UUID  `json:"to_customer_id"`
	Status         string     `json:"status"`
	InitiatedAt    time.Time  `json:"initiated_at"`
	ExpiresAt      time.Time  `json:"expires_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
}

// FlagRequest represents a request to flag a voucher for review
type FlagRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CaseEntitlementResponse represents a case entitlement in API responses
type CaseEntitlementResponse struct {
	ID            uuid.UUID  `json:"id"`
	CustomerID    uuid.UUID  `json:"customer_id"`
	SellableSKUID uuid.UUID  `json:"sellable_sku_id"`
	VoucherCount  int        `json:"voucher_count"`
	Status        string     `json:"status"`
	BrokenAt      *time.Time `json:"broken_at,omitempty"`
	BrokenReason  string     `json:"broken_reason,omitempty"`
}

// ToVoucherResponse converts a voucher to its response form
func ToVoucherResponse(v *entitlement.Voucher) *VoucherResponse {
	return &VoucherResponse{
		ID:                v.ID,
		CustomerID:        v.CustomerID,
		AllocationID:      v.AllocationID,
		WineVariantID:     v.WineVariantID,
		FormatID:          v.FormatID,
		SellableSKUID:     v.SellableSKUID,
		CaseEntitlementID: v.CaseEntitlementID,
		LifecycleState:    string(v.LifecycleState),
		Tradable:          v.Tradable,
		Giftable:          v.Giftable,
		Suspended:         v.Suspended,
		RequiresAttention: v.RequiresAttention,
		AttentionReason:   v.AttentionReason,
		SaleReference:     v.SaleReference,
		UnitPrice:         v.UnitPrice,
		RedeemedAt:        v.RedeemedAt,
		CancelledAt:       v.CancelledAt,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
		Version:           v.Version,
	}
}

// ToVoucherResponses converts a voucher slice to response form
func ToVoucherResponses(vouchers []entitlement.Voucher) []VoucherResponse {
	out := make([]VoucherResponse, len(vouchers))
	for i := range vouchers {
		out[i] = *ToVoucherResponse(&vouchers[i])
	}
	return out
}

// ToTransferResponse converts a transfer to its response form
func ToTransferResponse(t *entitlement.VoucherTransfer) *TransferResponse {
	return &TransferResponse{
		ID:             t.ID,
		VoucherID:      t.VoucherID,
		FromCustomerID: t.FromCustomerID,
		ToCustomerID:   t.ToCustomerID,
		Status:         string(t.Status),
		InitiatedAt:    t.InitiatedAt,
		ExpiresAt:      t.ExpiresAt,
		ClosedAt:       t.ClosedAt,
	}
}

// ToCaseEntitlementResponse converts a case entitlement to its response form
func ToCaseEntitlementResponse(c *entitlement.CaseEntitlement) *CaseEntitlementResponse {
	return &CaseEntitlementResponse{
		ID:            c.ID,
		CustomerID:    c.CustomerID,
		SellableSKUID: c.SellableSKUID,
		VoucherCount:  c.VoucherCount,
		Status:        string(c.Status),
		BrokenAt:      c.BrokenAt,
		BrokenReason:  string(c.BrokenReason),
	}
}
