package fulfillment

import (
	"context"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
)

// OrderRepository defines the interface for shipping order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ShippingOrder, error)

	// FindByIDWithLines finds an order with its lines preloaded
	FindByIDWithLines(ctx context.Context, id uuid.UUID) (*ShippingOrder, error)

	// FindByCustomer finds orders placed by a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]ShippingOrder, error)

	// Create inserts an order with its lines
	Create(ctx context.Context, o *ShippingOrder) error

	// Save updates an order
	Save(ctx context.Context, o *ShippingOrder) error
}

// LineRepository defines the interface for shipping order line persistence
type LineRepository interface {
	// FindByID finds a line by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ShippingOrderLine, error)

	// FindByOrder finds the lines of an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]ShippingOrderLine, error)

	// FindByVoucher finds the live (non-cancelled) line for a voucher,
	// or shared.ErrNotFound when none exists
	FindByVoucher(ctx context.Context, voucherID uuid.UUID) (*ShippingOrderLine, error)

	// Create inserts a line. The partial unique index on
	// (voucher_id, shipping_order_id) WHERE status <> 'cancelled'
	// rejects a duplicate; implementations surface that as
	// shared.ErrAlreadyExists.
	Create(ctx context.Context, l *ShippingOrderLine) error

	// Save updates a line
	Save(ctx context.Context, l *ShippingOrderLine) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, l *ShippingOrderLine) error
}

// OrderExceptionRepository defines the interface for shipping order
// exception persistence
type OrderExceptionRepository interface {
	// FindByID finds an exception by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ShippingOrderException, error)

	// FindOpenByOrder finds the open exceptions against an order
	FindOpenByOrder(ctx context.Context, orderID uuid.UUID) ([]ShippingOrderException, error)

	// FindOpenByLine finds the open exceptions against a line
	FindOpenByLine(ctx context.Context, lineID uuid.UUID) ([]ShippingOrderException, error)

	// FindOpen lists open exceptions, oldest first
	FindOpen(ctx context.Context, filter shared.Filter) ([]ShippingOrderException, error)

	// Create inserts an exception
	Create(ctx context.Context, e *ShippingOrderException) error

	// Save updates an exception
	Save(ctx context.Context, e *ShippingOrderException) error
}
