package fulfillment

import (
	"context"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/allocation"
	"github.com/vintrade/backend/internal/domain/cellar"
	"github.com/vintrade/backend/internal/domain/entitlement"
	"github.com/vintrade/backend/internal/domain/shared"
)

// LineBinder attaches a physical serial to an entitlement at the
// correct moment, preserving allocation lineage and case integrity.
// It mutates the aggregates it is handed; the caller owns loading and
// persistence, inside one transaction per operation.
type LineBinder struct {
	constraints allocation.ConstraintChecker
}

// NewLineBinder creates a line binder
func NewLineBinder(constraints allocation.ConstraintChecker) *LineBinder {
	return &LineBinder{constraints: constraints}
}

// Validate checks voucher eligibility and allocation constraints for
// the order's destination. On success the voucher locks and the line
// moves from pending to validated.
func (s *LineBinder) Validate(ctx context.Context, order *ShippingOrder, line *ShippingOrderLine, voucher *entitlement.Voucher) error {
	if voucher.ID != line.VoucherID {
		return shared.NewDomainError(shared.CodeBindingConflict, "Voucher does not belong to this line")
	}
	if voucher.LifecycleState != entitlement.StateIssued {
		return shared.NewDomainErrorf(shared.CodeVoucherIneligible,
			"Voucher in state %q is not bindable", voucher.LifecycleState)
	}
	if voucher.Suspended {
		return shared.NewDomainError(shared.CodeVoucherIneligible, "Voucher is suspended")
	}
	if voucher.RequiresAttention {
		return shared.NewDomainErrorf(shared.CodeVoucherIneligible,
			"Voucher requires attention: %s", voucher.AttentionReason)
	}

	permitted, detail, err := s.constraints.Permits(ctx, line.AllocationID, order.DestinationChannel, order.DestinationGeography)
	if err != nil {
		return err
	}
	if !permitted {
		return shared.NewDomainErrorf(shared.CodeOwnershipConstraint,
			"Allocation terms disallow destination %s/%s: %s",
			order.DestinationChannel, order.DestinationGeography, detail)
	}

	if err := voucher.Lock(); err != nil {
		return err
	}
	return line.markValidated()
}

// LateBind assigns a concrete bottle at WMS pick time. Only from
// validated. The candidate's allocation lineage must match the line
// exactly; no substitution across allocations, even of identical SKU.
// bottleCase is the intact case the bottle sits in, nil when loose;
// siblings are the other non-cancelled lines of the same order.
func (s *LineBinder) LateBind(
	order *ShippingOrder,
	line *ShippingOrderLine,
	bottle *cellar.SerializedBottle,
	bottleCase *cellar.PhysicalCase,
	siblings []ShippingOrderLine,
	confirmedBy *uuid.UUID,
) error {
	if line.Status != LineValidated {
		return shared.NewDomainErrorf(shared.CodeInvalidStateTransition,
			"Late binding requires a validated line, line is %q", line.Status)
	}
	if err := s.checkCandidate(order, line, bottle, bottleCase, siblings); err != nil {
		return err
	}
	if err := bottle.ReserveForPicking(); err != nil {
		return err
	}
	return line.bindBottle(bottle.SerialNumber, confirmedBy)
}

// EarlyBind pre-assigns a serial before WMS pick, for personalized
// bottles. Same lineage and integrity checks as late binding, allowed
// only while the line has not advanced past validated. The bottle
// stays stored; it ships directly from there.
func (s *LineBinder) EarlyBind(
	order *ShippingOrder,
	line *ShippingOrderLine,
	bottle *cellar.SerializedBottle,
	bottleCase *cellar.PhysicalCase,
	siblings []ShippingOrderLine,
	confirmedBy *uuid.UUID,
) error {
	if bottle.State != cellar.BottleStored {
		return shared.NewDomainErrorf(shared.CodeBindingConflict,
			"Bottle %s in state %q cannot be pre-assigned", bottle.SerialNumber, bottle.State)
	}
	if err := s.checkCandidate(order, line, bottle, bottleCase, siblings); err != nil {
		return err
	}
	return line.bindEarly(bottle.SerialNumber, confirmedBy)
}

// ConfirmPick advances an early-bound line on the WMS pick event
func (s *LineBinder) ConfirmPick(line *ShippingOrderLine) error {
	return line.markPicked()
}

// Ship converges both binding paths. The line must carry exactly one
// binding; the bottle ships (from reserved_for_picking, or straight
// from stored when early bound) and the voucher is consumed.
func (s *LineBinder) Ship(line *ShippingOrderLine, voucher *entitlement.Voucher, bottle *cellar.SerializedBottle) error {
	if !line.IsBound() {
		return shared.NewDomainError(shared.CodeBindingConflict,
			"Line must carry exactly one binding to ship")
	}
	if serial := line.BoundSerial(); serial != nil && bottle.SerialNumber != *serial {
		return shared.NewDomainErrorf(shared.CodeBindingConflict,
			"Bottle %s is not the one bound to this line", bottle.SerialNumber)
	}
	if err := bottle.Ship(); err != nil {
		return err
	}
	if err := line.markShipped(); err != nil {
		return err
	}
	return voucher.Redeem()
}

// CancelLine voids a line that has not shipped. A reserved bottle goes
// back to stored and a locked voucher back to issued; the entitlement
// is preserved, not consumed.
func (s *LineBinder) CancelLine(line *ShippingOrderLine, voucher *entitlement.Voucher, bottle *cellar.SerializedBottle) error {
	if err := line.cancel(); err != nil {
		return err
	}
	if bottle != nil && bottle.State == cellar.BottleReserved {
		if err := bottle.ReleaseToStored(); err != nil {
			return err
		}
	}
	if voucher != nil && voucher.LifecycleState == entitlement.StateLocked {
		if err := voucher.Unlock(); err != nil {
			return err
		}
	}
	return nil
}

// checkCandidate enforces the lineage and case-integrity rules shared
// by both binding paths.
func (s *LineBinder) checkCandidate(
	order *ShippingOrder,
	line *ShippingOrderLine,
	bottle *cellar.SerializedBottle,
	bottleCase *cellar.PhysicalCase,
	siblings []ShippingOrderLine,
) error {
	if bottle.AllocationID != line.AllocationID {
		return shared.NewDomainErrorf(shared.CodeAllocationMismatch,
			"Bottle %s belongs to a different allocation than the line", bottle.SerialNumber)
	}
	if bottleCase == nil || !bottleCase.IsIntact() || !order.PreservesCases() {
		return nil
	}
	if s.wouldSplitCase(bottleCase, line, siblings) {
		return shared.NewDomainErrorf(shared.CodeCaseIntegrityViolated,
			"Bottle %s sits in an intact case and this shipment would split it", bottle.SerialNumber)
	}
	return nil
}

// wouldSplitCase returns true unless the shipment takes the whole
// case: every bottle of the intact case must be claimed by a
// non-cancelled line of the same order, this one included.
func (s *LineBinder) wouldSplitCase(bottleCase *cellar.PhysicalCase, line *ShippingOrderLine, siblings []ShippingOrderLine) bool {
	caseSerials := make(map[string]bool, len(bottleCase.Bottles))
	for _, b := range bottleCase.Bottles {
		caseSerials[b.SerialNumber] = false
	}

	claimed := 1
	for i := range siblings {
		sib := &siblings[i]
		if sib.ID == line.ID || sib.Status == LineCancelled {
			continue
		}
		serial := sib.BoundSerial()
		if serial == nil {
			continue
		}
		if seen, ok := caseSerials[*serial]; ok && !seen {
			caseSerials[*serial] = true
			claimed++
		}
	}
	return claimed < len(bottleCase.Bottles)
}
