package entitlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
)

// CaseStatus represents the integrity of a case entitlement
type CaseStatus string

const (
	CaseIntact CaseStatus = "intact"
	CaseBroken CaseStatus = "broken"
)

// BreakReason names what first broke a case entitlement
type BreakReason string

const (
	BreakReasonTransfer          BreakReason = "transfer"
	BreakReasonTrade             BreakReason = "trade"
	BreakReasonPartialRedemption BreakReason = "partial_redemption"
	BreakReasonManual            BreakReason = "manual"
)

// CaseEntitlement groups vouchers sold together as one fixed case. It
// stays intact until any member voucher is individually transferred,
// traded, or redeemed; breaking happens exactly once and is
// irreversible. After breaking, member vouchers are treated as
// independent bottles for binding purposes.
type CaseEntitlement struct {
	shared.BaseAggregateRoot
	CustomerID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	SellableSKUID uuid.UUID   `gorm:"type:uuid;column:sellable_sku_id;not null"`
	VoucherCount  int         `gorm:"not null"`
	Status        CaseStatus  `gorm:"type:varchar(20);not null;default:'intact'"`
	BrokenAt      *time.Time  `gorm:"type:timestamp"`
	BrokenReason  BreakReason `gorm:"type:varchar(40)"`

	// Loaded lazily
	Vouchers []Voucher `gorm:"foreignKey:CaseEntitlementID;references:ID"`
}

// TableName returns the table name for GORM
func (CaseEntitlement) TableName() string {
	return "case_entitlements"
}

// NewCaseEntitlement creates an intact case entitlement for a fixed
// case of voucherCount bottles
func NewCaseEntitlement(customerID, sellableSKUID uuid.UUID, voucherCount int) (*CaseEntitlement, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID is required")
	}
	if sellableSKUID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SKU", "Sellable SKU ID is required")
	}
	if voucherCount < 2 {
		return nil, shared.NewDomainError("INVALID_CASE_SIZE", "A case entitlement needs at least two vouchers")
	}

	return &CaseEntitlement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		SellableSKUID:     sellableSKUID,
		VoucherCount:      voucherCount,
		Status:            CaseIntact,
	}, nil
}

// IsBroken returns true once the case has been broken
func (c *CaseEntitlement) IsBroken() bool {
	return c.Status == CaseBroken
}

// Break flips intact -> broken. Idempotent: breaking an already broken
// case is a no-op and the original reason and timestamp are preserved.
func (c *CaseEntitlement) Break(reason BreakReason) {
	if c.Status == CaseBroken {
		return
	}
	now := time.Now()
	c.Status = CaseBroken
	c.BrokenAt = &now
	c.BrokenReason = reason
	c.UpdatedAt = now
	c.IncrementVersion()
	c.AddDomainEvent(NewCaseEntitlementBrokenEvent(c, reason))
}
