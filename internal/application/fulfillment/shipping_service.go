package fulfillment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/cellar"
	"github.com/vintrade/backend/internal/domain/entitlement"
	"github.com/vintrade/backend/internal/domain/fulfillment"
	"github.com/vintrade/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ShippingService drives shipping orders from creation through
// validation, binding and shipment. Operator calls surface failures as
// errors; WMS-driven calls consume the event and park failures as
// exceptions so the message stream never wedges on one bad line.
type ShippingService struct {
	scope          TransactionScope
	orderRepo      fulfillment.OrderRepository
	lineRepo       fulfillment.LineRepository
	exceptionRepo  fulfillment.OrderExceptionRepository
	voucherRepo    entitlement.VoucherRepository
	binder         *fulfillment.LineBinder
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewShippingService creates a new ShippingService
func NewShippingService(
	scope TransactionScope,
	orderRepo fulfillment.OrderRepository,
	lineRepo fulfillment.LineRepository,
	exceptionRepo fulfillment.OrderExceptionRepository,
	voucherRepo entitlement.VoucherRepository,
	binder *fulfillment.LineBinder,
	logger *zap.Logger,
) *ShippingService {
	return &ShippingService{
		scope:         scope,
		orderRepo:     orderRepo,
		lineRepo:      lineRepo,
		exceptionRepo: exceptionRepo,
		voucherRepo:   voucherRepo,
		binder:        binder,
		logger:        logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ShippingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ShippingService) publish(ctx context.Context, aggregates ...interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}) {
	if s.eventPublisher == nil {
		return
	}
	for _, a := range aggregates {
		if events := a.GetDomainEvents(); len(events) > 0 {
			_ = s.eventPublisher.Publish(ctx, events...)
			a.ClearDomainEvents()
		}
	}
}

// CreateOrder opens an order with one pending line per voucher. Each
// line copies the voucher's allocation lineage at creation; the copy
// is what late binding checks candidates against.
func (s *ShippingService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderResponse, error) {
	order, err := fulfillment.NewShippingOrder(req.CustomerID, req.DestinationChannel,
		req.DestinationGeography, fulfillment.PackagingPreference(req.PackagingPreference))
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, voucherID := range req.VoucherIDs {
			v, err := repos.VoucherRepo().FindByID(ctx, voucherID)
			if err != nil {
				return err
			}
			if v.CustomerID != req.CustomerID {
				return shared.NewDomainErrorf(shared.CodeVoucherIneligible,
					"Voucher %s does not belong to customer %s", voucherID, req.CustomerID)
			}
			line, err := fulfillment.NewShippingOrderLine(order.ID, v.ID, v.AllocationID)
			if err != nil {
				return err
			}
			order.Lines = append(order.Lines, *line)
		}
		if err := repos.OrderRepo().Create(ctx, order); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				return shared.NewDomainError(shared.CodeBindingConflict,
					"A voucher on this order already sits on a live order line")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Created shipping order",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", order.CustomerID.String()),
		zap.Int("lines", len(order.Lines)),
	)
	return ToOrderResponse(order), nil
}

// GetOrder retrieves an order with its lines
func (s *ShippingService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// ListOrders lists a customer's orders
func (s *ShippingService) ListOrders(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = *ToOrderResponse(&orders[i])
	}
	return out, nil
}

// ValidateLine checks the line's voucher eligibility and destination
// constraints, locking the voucher on success. Operator-facing;
// failures come back as errors.
func (s *ShippingService) ValidateLine(ctx context.Context, lineID uuid.UUID) (*LineResponse, error) {
	var line *fulfillment.ShippingOrderLine
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		l, order, err := s.loadLine(ctx, repos, lineID)
		if err != nil {
			return err
		}
		v, err := repos.VoucherRepo().FindByID(ctx, l.VoucherID)
		if err != nil {
			return err
		}
		if err := s.binder.Validate(ctx, order, l, v); err != nil {
			return err
		}
		if err := repos.VoucherRepo().SaveWithLock(ctx, v); err != nil {
			return err
		}
		if err := repos.LineRepo().SaveWithLock(ctx, l); err != nil {
			return err
		}
		line = l
		s.publish(ctx, v, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToLineResponse(line), nil
}

// LateBind assigns the picked bottle to a validated line. With a WMS
// event id attached, a binding failure is parked as an exception and
// the result carries it instead of a line.
func (s *ShippingService) LateBind(ctx context.Context, lineID uuid.UUID, req *BindLineRequest) (*BindResult, error) {
	var line *fulfillment.ShippingOrderLine
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		l, order, err := s.loadLine(ctx, repos, lineID)
		if err != nil {
			return err
		}
		bottle, err := repos.BottleRepo().FindBySerial(ctx, req.SerialNumber)
		if err != nil {
			return err
		}
		var bottleCase *cellar.PhysicalCase
		if bottle.CaseID != nil {
			bottleCase, err = repos.CaseRepo().FindByID(ctx, *bottle.CaseID)
			if err != nil {
				return err
			}
		}
		siblings, err := repos.LineRepo().FindByOrder(ctx, l.ShippingOrderID)
		if err != nil {
			return err
		}

		if err := s.binder.LateBind(order, l, bottle, bottleCase, siblings, req.ConfirmedBy); err != nil {
			return err
		}
		if err := repos.BottleRepo().SaveWithLock(ctx, bottle); err != nil {
			return err
		}
		if err := repos.LineRepo().SaveWithLock(ctx, l); err != nil {
			return err
		}
		line = l
		s.publish(ctx, l)
		return nil
	})
	if err != nil {
		if req.WMSEventID != nil {
			return s.parkFailure(ctx, lineID, err, req.WMSEventID)
		}
		return nil, err
	}
	return &BindResult{Line: ToLineResponse(line)}, nil
}

// EarlyBind pre-assigns a serial to a line before the warehouse picks.
// Operator-facing; failures come back as errors.
func (s *ShippingService) EarlyBind(ctx context.Context, lineID uuid.UUID, req *BindLineRequest) (*LineResponse, error) {
	var line *fulfillment.ShippingOrderLine
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		l, order, err := s.loadLine(ctx, repos, lineID)
		if err != nil {
			return err
		}
		bottle, err := repos.BottleRepo().FindBySerial(ctx, req.SerialNumber)
		if err != nil {
			return err
		}
		var bottleCase *cellar.PhysicalCase
		if bottle.CaseID != nil {
			bottleCase, err = repos.CaseRepo().FindByID(ctx, *bottle.CaseID)
			if err != nil {
				return err
			}
		}
		siblings, err := repos.LineRepo().FindByOrder(ctx, l.ShippingOrderID)
		if err != nil {
			return err
		}

		if err := s.binder.EarlyBind(order, l, bottle, bottleCase, siblings, req.ConfirmedBy); err != nil {
			return err
		}
		if err := repos.LineRepo().SaveWithLock(ctx, l); err != nil {
			return err
		}
		line = l
		s.publish(ctx, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToLineResponse(line), nil
}

// ConfirmPick advances an early-bound line when the warehouse picks
// the pre-assigned bottle
func (s *ShippingService) ConfirmPick(ctx context.Context, lineID uuid.UUID, req *ConfirmPickRequest) (*BindResult, error) {
	var line *fulfillment.ShippingOrderLine
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		l, err := repos.LineRepo().FindByID(ctx, lineID)
		if err != nil {
			return err
		}
		if err := s.binder.ConfirmPick(l); err != nil {
			return err
		}
		if err := repos.LineRepo().SaveWithLock(ctx, l); err != nil {
			return err
		}
		line = l
		return nil
	})
	if err != nil {
		if req.WMSEventID != nil {
			return s.parkFailure(ctx, lineID, err, req.WMSEventID)
		}
		return nil, err
	}
	return &BindResult{Line: ToLineResponse(line)}, nil
}

// ShipLine ships a bound line, consuming its voucher. Consuming one
// member of an intact case entitlement breaks the case, same as an
// operator redemption would. When every live line of the order has
// shipped the header closes too.
func (s *ShippingService) ShipLine(ctx context.Context, lineID uuid.UUID, req *ShipLineRequest) (*BindResult, error) {
	var line *fulfillment.ShippingOrderLine
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		l, order, err := s.loadLine(ctx, repos, lineID)
		if err != nil {
			return err
		}
		v, err := repos.VoucherRepo().FindByID(ctx, l.VoucherID)
		if err != nil {
			return err
		}
		serial := l.BoundSerial()
		if serial == nil {
			return shared.NewDomainError(shared.CodeBindingConflict,
				"Line has no bound serial to ship")
		}
		bottle, err := repos.BottleRepo().FindBySerial(ctx, *serial)
		if err != nil {
			return err
		}

		if err := s.binder.Ship(l, v, bottle); err != nil {
			return err
		}
		if err := repos.BottleRepo().SaveWithLock(ctx, bottle); err != nil {
			return err
		}
		if err := repos.VoucherRepo().SaveWithLock(ctx, v); err != nil {
			return err
		}
		if err := repos.LineRepo().SaveWithLock(ctx, l); err != nil {
			return err
		}
		if err := s.breakCaseIfIntact(ctx, repos, v); err != nil {
			return err
		}

		if err := s.closeOrderIfDone(ctx, repos, order, l); err != nil {
			return err
		}
		line = l
		s.publish(ctx, v, l)
		return nil
	})
	if err != nil {
		if req.WMSEventID != nil {
			return s.parkFailure(ctx, lineID, err, req.WMSEventID)
		}
		return nil, err
	}
	return &BindResult{Line: ToLineResponse(line)}, nil
}

// CancelLine voids a line that has not shipped, releasing its bottle
// and voucher
func (s *ShippingService) CancelLine(ctx context.Context, lineID uuid.UUID) (*LineResponse, error) {
	var line *fulfillment.ShippingOrderLine
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		l, err := repos.LineRepo().FindByID(ctx, lineID)
		if err != nil {
			return err
		}
		v, err := repos.VoucherRepo().FindByID(ctx, l.VoucherID)
		if err != nil {
			return err
		}
		var bottle *cellar.SerializedBottle
		if serial := l.BoundSerial(); serial != nil {
			bottle, err = repos.BottleRepo().FindBySerial(ctx, *serial)
			if err != nil {
				return err
			}
		}

		if err := s.binder.CancelLine(l, v, bottle); err != nil {
			return err
		}
		if bottle != nil {
			if err := repos.BottleRepo().SaveWithLock(ctx, bottle); err != nil {
				return err
			}
		}
		if err := repos.VoucherRepo().SaveWithLock(ctx, v); err != nil {
			return err
		}
		if err := repos.LineRepo().SaveWithLock(ctx, l); err != nil {
			return err
		}
		line = l
		s.publish(ctx, v, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToLineResponse(line), nil
}

// ResolveException closes an order exception after review
func (s *ShippingService) ResolveException(ctx context.Context, id uuid.UUID, req *ResolveExceptionRequest) (*ExceptionResponse, error) {
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

// ListOpenExceptions returns the open review queue
func (s *ShippingService) ListOpenExceptions(ctx context.Context, filter shared.Filter) ([]ExceptionResponse, error) {
	excs, err := s.exceptionRepo.FindOpen(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]ExceptionResponse, len(excs))
	for i := range excs {
		out[i] = *ToExceptionResponse(&excs[i])
	}
	return out, nil
}

func (s *ShippingService) loadLine(ctx context.Context, repos TransactionalRepositories, lineID uuid.UUID) (*fulfillment.ShippingOrderLine, *fulfillment.ShippingOrder, error) {
	l, err := repos.LineRepo().FindByID(ctx, lineID)
	if err != nil {
		return nil, nil, err
	}
	order, err := repos.OrderRepo().FindByID(ctx, l.ShippingOrderID)
	if err != nil {
		return nil, nil, err
	}
	return l, order, nil
}

// breakCaseIfIntact breaks the shipped voucher's case entitlement when
// one is set and still intact. The first member to ship counts as a
// partial redemption; the remaining members keep their vouchers.
func (s *ShippingService) breakCaseIfIntact(ctx context.Context, repos TransactionalRepositories, v *entitlement.Voucher) error {
	if v.CaseEntitlementID == nil {
		return nil
	}
	ce, err := repos.CaseEntitlementRepo().FindByID(ctx, *v.CaseEntitlementID)
	if err != nil {
		return err
	}
	if ce.IsBroken() {
		return nil
	}
	ce.Break(entitlement.BreakReasonPartialRedemption)
	if err := repos.CaseEntitlementRepo().Save(ctx, ce); err != nil {
		return err
	}
	s.publish(ctx, ce)
	return nil
}

// closeOrderIfDone marks the header shipped once no live line remains
// unshipped. The line just saved is checked from memory; the reload
// inside the transaction would not see it otherwise on some drivers.
func (s *ShippingService) closeOrderIfDone(ctx context.Context, repos TransactionalRepositories, order *fulfillment.ShippingOrder, shipped *fulfillment.ShippingOrderLine) error {
	lines, err := repos.LineRepo().FindByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	for i := range lines {
		if lines[i].ID == shipped.ID {
			continue
		}
		switch lines[i].Status {
		case fulfillment.LineShipped, fulfillment.LineCancelled:
		default:
			return nil
		}
	}
	order.MarkShipped()
	return repos.OrderRepo().Save(ctx, order)
}

// parkFailure records a WMS-driven failure as an open exception. Only
// domain rule violations park; infrastructure errors still propagate
// so the message can be retried.
func (s *ShippingService) parkFailure(ctx context.Context, lineID uuid.UUID, cause error, wmsEventID *string) (*BindResult, error) {
	var domainErr *shared.DomainError
	if !errors.As(cause, &domainErr) {
		return nil, cause
	}

	l, err := s.lineRepo.FindByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	exc, err := fulfillment.NewShippingOrderException(l.ShippingOrderID, &l.ID,
		fulfillment.ExceptionTypeForCode(domainErr.Code), domainErr.Message, wmsEventID)
	if err != nil {
		return nil, err
	}
	if err := s.exceptionRepo.Create(ctx, exc); err != nil {
		return nil, err
	}

	s.logger.Warn("Parked fulfilment failure for review",
		zap.String("line_id", lineID.String()),
		zap.String("exception_type", string(exc.ExceptionType)),
		zap.String("code", domainErr.Code),
	)
	return &BindResult{Exception: ToExceptionResponse(exc)}, nil
}
