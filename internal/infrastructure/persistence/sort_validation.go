package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// Allowed sort fields per table. Sort input comes from query strings and
// is interpolated into ORDER BY, so anything not whitelisted here is
// replaced with the default field.

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// AllocationSortFields contains allowed sort fields for allocations
var AllocationSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"product_ref":    true,
	"source_type":    true,
	"supply_form":    true,
	"total_quantity": true,
	"sold_quantity":  true,
	"status":         true,
	"closed_at":      true,
}

// VoucherSortFields contains allowed sort fields for vouchers
var VoucherSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"customer_id":     true,
	"allocation_id":   true,
	"lifecycle_state": true,
	"sale_reference":  true,
	"sale_ordinal":    true,
	"unit_price":      true,
	"redeemed_at":     true,
	"cancelled_at":    true,
}

// TransferSortFields contains allowed sort fields for voucher transfers
var TransferSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"status":       true,
	"initiated_at": true,
	"expires_at":   true,
	"closed_at":    true,
}

// CaseEntitlementSortFields contains allowed sort fields for case entitlements
var CaseEntitlementSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"customer_id":   true,
	"status":        true,
	"broken_at":     true,
	"voucher_count": true,
}

// InboundBatchSortFields contains allowed sort fields for inbound batches
var InboundBatchSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"allocation_id":      true,
	"purchase_order_ref": true,
	"expected_quantity":  true,
	"serialized_count":   true,
	"status":             true,
	"received_at":        true,
	"serialized_at":      true,
}

// BottleSortFields contains allowed sort fields for serialized bottles
var BottleSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"serial_number":    true,
	"allocation_id":    true,
	"inbound_batch_id": true,
	"ownership_type":   true,
	"state":            true,
}

// PhysicalCaseSortFields contains allowed sort fields for physical cases
var PhysicalCaseSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"allocation_id":    true,
	"integrity_status": true,
	"broken_at":        true,
}

// MovementSortFields contains allowed sort fields for inventory movements
var MovementSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"movement_type": true,
	"trigger":       true,
	"occurred_at":   true,
}

// InventoryExceptionSortFields contains allowed sort fields for inventory exceptions
var InventoryExceptionSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"exception_type": true,
	"status":         true,
	"resolved_at":    true,
}

// ShippingOrderSortFields contains allowed sort fields for shipping orders
var ShippingOrderSortFields = map[string]bool{
	"id":                    true,
	"created_at":            true,
	"updated_at":            true,
	"customer_id":           true,
	"destination_channel":   true,
	"destination_geography": true,
	"status":                true,
	"shipped_at":            true,
}

// OrderExceptionSortFields contains allowed sort fields for shipping order exceptions
var OrderExceptionSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"exception_type": true,
	"status":         true,
	"resolved_at":    true,
}
