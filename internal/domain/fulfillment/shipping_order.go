package fulfillment

import (
	"time"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
)

// PackagingPreference controls whether intact cases may be split for
// this shipment
type PackagingPreference string

const (
	PackagingAny           PackagingPreference = "any"
	PackagingPreserveCases PackagingPreference = "preserve_cases"
)

// IsValid returns true if the preference is valid
func (p PackagingPreference) IsValid() bool {
	return p == PackagingAny || p == PackagingPreserveCases
}

// OrderStatus represents the shipping order header lifecycle
type OrderStatus string

const (
	OrderOpen      OrderStatus = "open"
	OrderShipped   OrderStatus = "shipped"
	OrderCancelled OrderStatus = "cancelled"
)

// ShippingOrder is the shipment header. Destination channel and
// geography feed the allocation constraint check at line validation.
type ShippingOrder struct {
	shared.BaseAggregateRoot
	CustomerID           uuid.UUID           `gorm:"type:uuid;not null;index"`
	DestinationChannel   string              `gorm:"type:varchar(50);not null"`
	DestinationGeography string              `gorm:"type:varchar(10);not null"`
	PackagingPreference  PackagingPreference `gorm:"type:varchar(20);not null;default:'any'"`
	Status               OrderStatus         `gorm:"type:varchar(20);not null;default:'open';index"`
	ShippedAt            *time.Time          `gorm:"type:timestamp"`

	Lines []ShippingOrderLine `gorm:"foreignKey:ShippingOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (ShippingOrder) TableName() string {
	return "shipping_orders"
}

// NewShippingOrder creates an open shipping order
func NewShippingOrder(customerID uuid.UUID, channel, geography string, packaging PackagingPreference) (*ShippingOrder, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID is required")
	}
	if channel == "" {
		return nil, shared.NewDomainError("INVALID_DESTINATION", "Destination channel is required")
	}
	if geography == "" {
		return nil, shared.NewDomainError("INVALID_DESTINATION", "Destination geography is required")
	}
	if packaging == "" {
		packaging = PackagingAny
	}
	if !packaging.IsValid() {
		return nil, shared.NewDomainErrorf("INVALID_PACKAGING", "Unknown packaging preference %q", packaging)
	}

	return &ShippingOrder{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		CustomerID:           customerID,
		DestinationChannel:   channel,
		DestinationGeography: geography,
		PackagingPreference:  packaging,
		Status:               OrderOpen,
	}, nil
}

// PreservesCases returns true when intact cases must not be split
func (o *ShippingOrder) PreservesCases() bool {
	return o.PackagingPreference == PackagingPreserveCases
}

// MarkShipped closes the header once every live line has shipped
func (o *ShippingOrder) MarkShipped() {
	if o.Status != OrderOpen {
		return
	}
	now := time.Now()
	o.Status = OrderShipped
	o.ShippedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
}
