package trading

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/allocation"
	"github.com/vintrade/backend/internal/domain/entitlement"
	"github.com/vintrade/backend/internal/domain/shared"
	"github.com/vintrade/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// VoucherService handles voucher issuance, trading and lifecycle
// operations
type VoucherService struct {
	scope          TransactionScope
	allocationRepo allocation.Repository
	voucherRepo    entitlement.VoucherRepository
	transferRepo   entitlement.TransferRepository
	caseRepo       entitlement.CaseEntitlementRepository
	eventPublisher shared.EventPublisher
	auditLog       shared.AuditLog
	transferTTL    time.Duration
	logger         *zap.Logger
}

// NewVoucherService creates a new VoucherService
func NewVoucherService(
	scope TransactionScope,
	allocationRepo allocation.Repository,
	voucherRepo entitlement.VoucherRepository,
	transferRepo entitlement.TransferRepository,
	caseRepo entitlement.CaseEntitlementRepository,
	logger *zap.Logger,
) *VoucherService {
	return &VoucherService{
		scope:          scope,
		allocationRepo: allocationRepo,
		voucherRepo:    voucherRepo,
		transferRepo:   transferRepo,
		caseRepo:       caseRepo,
		transferTTL:    entitlement.DefaultTransferTTL,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *VoucherService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetAuditLog sets the audit trail sink for lifecycle transitions
func (s *VoucherService) SetAuditLog(auditLog shared.AuditLog) {
	s.auditLog = auditLog
}

// SetTransferTTL overrides how long a pending transfer stays acceptable.
func (s *VoucherService) SetTransferTTL(ttl time.Duration) {
	if ttl > 0 {
		s.transferTTL = ttl
	}
}

// audit appends one trail entry, best effort. The actor is taken from
// the request context when the gateway supplied one.
func (s *VoucherService) audit(ctx context.Context, ref shared.AuditRef, action, detail string) {
	if s.auditLog == nil {
		return
	}
	var actorID *uuid.UUID
	if raw := logger.GetUserID(ctx); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			actorID = &id
		}
	}
	if err := s.auditLog.Append(ctx, shared.NewAuditEntry(ref, action, detail, actorID)); err != nil {
		s.logger.Warn("Failed to append audit entry",
			zap.String("entity_id", ref.EntityID.String()),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func voucherRef(id uuid.UUID) shared.AuditRef {
	return shared.AuditRef{EntityType: shared.AuditEntityVoucher, EntityID: id}
}

func transferRef(id uuid.UUID) shared.AuditRef {
	return shared.AuditRef{EntityType: shared.AuditEntityVoucherTransfer, EntityID: id}
}

func (s *VoucherService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

func (s *VoucherService) publishAggregate(ctx context.Context, agg shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := agg.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	agg.ClearDomainEvents()
}

// IssueVouchers turns a confirmed sale into a voucher set. Idempotent
// on (allocation, customer, sale_reference): a replayed sale event
// returns the existing set unchanged. Supply reservation and voucher
// creation share one transaction; the reservation is a conditional
// update on the allocation row, so concurrent issuance against the
// same allocation cannot oversell.
func (s *VoucherService) IssueVouchers(ctx context.Context, req *IssueVouchersRequest) (*IssueVouchersResponse, error) {
	if req.Quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if req.SoldAsCase && req.SellableSKUID == nil {
		return nil, shared.NewDomainError("INVALID_SKU", "A case sale requires a sellable SKU")
	}
	if req.SoldAsCase && req.Quantity < 2 {
		return nil, shared.NewDomainError("INVALID_CASE_SIZE", "A case sale needs at least two vouchers")
	}

	// Fast path: a previous delivery of the same sale event
	existing, err := s.voucherRepo.FindBySaleReference(ctx, req.AllocationID, req.CustomerID, req.SaleReference)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if len(existing) > 0 {
		return s.replayedSet(req, existing)
	}

	alloc, err := s.allocationRepo.FindByID(ctx, req.AllocationID)
	if err != nil {
		return nil, err
	}
	// Vouchers carry the bottled SKU identity copied from the
	// allocation. Bulk liquid has no such identity until bottling, so
	// it cannot back a voucher.
	wineVariantID, formatID, ok := alloc.ProductRef.BottleSKU()
	if !ok {
		return nil, shared.NewDomainErrorf(shared.CodeUnsupportedProductKind,
			"Allocation %s holds a %s product; vouchers require a bottled SKU",
			alloc.ID, alloc.ProductRef.Kind())
	}

	var vouchers []*entitlement.Voucher
	txErr := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.AllocationRepo().ReserveSupply(ctx, req.AllocationID, int64(req.Quantity)); err != nil {
			return err
		}

		vouchers = make([]*entitlement.Voucher, req.Quantity)
		for i := 0; i < req.Quantity; i++ {
			v, err := entitlement.NewVoucher(entitlement.VoucherParams{
				CustomerID:    req.CustomerID,
				AllocationID:  req.AllocationID,
				WineVariantID: wineVariantID,
				FormatID:      formatID,
				SellableSKUID: req.SellableSKUID,
				SaleReference: req.SaleReference,
				SaleOrdinal:   i + 1,
				UnitPrice:     req.UnitPrice,
				Tradable:      req.Tradable,
				Giftable:      req.Giftable,
			})
			if err != nil {
				return err
			}
			vouchers[i] = v
		}

		if req.SoldAsCase {
			ce, err := entitlement.NewCaseEntitlement(req.CustomerID, *req.SellableSKUID, req.Quantity)
			if err != nil {
				return err
			}
			if err := repos.CaseRepo().Create(ctx, ce); err != nil {
				return err
			}
			for _, v := range vouchers {
				if err := v.AssignToCase(ce.ID); err != nil {
					return err
				}
			}
		}

		return repos.VoucherRepo().CreateSet(ctx, vouchers)
	})

	if txErr != nil {
		// A concurrent issuance of the same sale reference won the
		// insert race; the transaction rolled back, so the supply
		// reservation was undone. Fall back to the winner's set.
		if errors.Is(txErr, shared.ErrAlreadyExists) {
			winners, err := s.voucherRepo.FindBySaleReference(ctx, req.AllocationID, req.CustomerID, req.SaleReference)
			if err != nil {
				return nil, err
			}
			return s.replayedSet(req, winners)
		}
		return nil, txErr
	}

	s.logger.Info("Issued voucher set",
		zap.String("allocation_id", req.AllocationID.String()),
		zap.String("customer_id", req.CustomerID.String()),
		zap.String("sale_reference", req.SaleReference),
		zap.Int("quantity", req.Quantity),
	)
	s.publish(ctx, entitlement.NewVouchersIssuedEvent(vouchers))
	for _, v := range vouchers {
		s.audit(ctx, voucherRef(v.ID), "issued", "Issued from sale "+req.SaleReference)
	}

	out := make([]entitlement.Voucher, len(vouchers))
	for i, v := range vouchers {
		out[i] = *v
	}
	return &IssueVouchersResponse{Vouchers: ToVoucherResponses(out), Replayed: false}, nil
}

// replayedSet returns an existing voucher set for an idempotent
// replay, rejecting the call when the replay carries different
// parameters than the original sale.
func (s *VoucherService) replayedSet(req *IssueVouchersRequest, existing []entitlement.Voucher) (*IssueVouchersResponse, error) {
	if len(existing) != req.Quantity {
		return nil, shared.NewDomainErrorf(shared.CodeDuplicateSaleReference,
			"Sale reference %q was already issued with quantity %d, not %d",
			req.SaleReference, len(existing), req.Quantity)
	}
	first := existing[0]
	if (first.SellableSKUID == nil) != (req.SellableSKUID == nil) ||
		(first.SellableSKUID != nil && req.SellableSKUID != nil && *first.SellableSKUID != *req.SellableSKUID) {
		return nil, shared.NewDomainErrorf(shared.CodeDuplicateSaleReference,
			"Sale reference %q was already issued with a different sellable SKU", req.SaleReference)
	}
	if (first.CaseEntitlementID != nil) != req.SoldAsCase {
		return nil, shared.NewDomainErrorf(shared.CodeDuplicateSaleReference,
			"Sale reference %q was already issued with a different case packaging", req.SaleReference)
	}
	if first.Tradable != req.Tradable || first.Giftable != req.Giftable {
		return nil, shared.NewDomainErrorf(shared.CodeDuplicateSaleReference,
			"Sale reference %q was already issued with different trading terms", req.SaleReference)
	}
	if (first.UnitPrice == nil) != (req.UnitPrice == nil) ||
		(first.UnitPrice != nil && req.UnitPrice != nil && !first.UnitPrice.Equal(*req.UnitPrice)) {
		return nil, shared.NewDomainErrorf(shared.CodeDuplicateSaleReference,
			"Sale reference %q was already issued at a different unit price", req.SaleReference)
	}
	return &IssueVouchersResponse{Vouchers: ToVoucherResponses(existing), Replayed: true}, nil
}

// GetByID retrieves a voucher
func (s *VoucherService) GetByID(ctx context.Context, id uuid.UUID) (*VoucherResponse, error) {
	v, err := s.voucherRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToVoucherResponse(v), nil
}

// ListByCustomer retrieves the vouchers held by a customer
func (s *VoucherService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]VoucherResponse, error) {
	vouchers, err := s.voucherRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}
	return ToVoucherResponses(vouchers), nil
}

// ListByAllocation retrieves the vouchers issued against an allocation
func (s *VoucherService) ListByAllocation(ctx context.Context, allocationID uuid.UUID, filter shared.Filter) ([]VoucherResponse, error) {
	vouchers, err := s.voucherRepo.FindByAllocation(ctx, allocationID, filter)
	if err != nil {
		return nil, err
	}
	return ToVoucherResponses(vouchers), nil
}

// GetTransfer retrieves a transfer
func (s *VoucherService) GetTransfer(ctx context.Context, transferID uuid.UUID) (*TransferResponse, error) {
	t, err := s.transferRepo.FindByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	return ToTransferResponse(t), nil
}

// GetPendingTransfer returns a voucher's open transfer offer
func (s *VoucherService) GetPendingTransfer(ctx context.Context, voucherID uuid.UUID) (*TransferResponse, error) {
	t, err := s.transferRepo.FindPendingByVoucher(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	return ToTransferResponse(t), nil
}

// History returns the audit trail of a voucher, oldest first
func (s *VoucherService) History(ctx context.Context, voucherID uuid.UUID, filter shared.Filter) ([]shared.AuditEntry, error) {
	if _, err := s.voucherRepo.FindByID(ctx, voucherID); err != nil {
		return nil, err
	}
	if s.auditLog == nil {
		return []shared.AuditEntry{}, nil
	}
	return s.auditLog.FindByEntity(ctx, voucherRef(voucherID), filter)
}

// Transfer offers a voucher to another customer. At most one pending
// transfer may exist per voucher.
func (s *VoucherService) Transfer(ctx context.Context, voucherID, toCustomerID uuid.UUID) (*TransferResponse, error) {
	v, err := s.voucherRepo.FindByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if err := v.IsTransferable(); err != nil {
		return nil, err
	}

	t, err := entitlement.NewVoucherTransfer(v.ID, v.CustomerID, toCustomerID, s.transferTTL)
	if err != nil {
		return nil, err
	}
	if err := s.transferRepo.Create(ctx, t); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError(shared.CodeTransferAlreadyPending,
				"Voucher already has a pending transfer")
		}
		return nil, err
	}
	s.audit(ctx, transferRef(t.ID), "opened", "Offered voucher "+v.ID.String()+" to customer "+toCustomerID.String())
	return ToTransferResponse(t), nil
}

// AcceptTransfer completes a pending transfer: the voucher changes
// holder and, if it belongs to an intact case entitlement, the case
// breaks as a side effect.
func (s *VoucherService) AcceptTransfer(ctx context.Context, transferID uuid.UUID) (*TransferResponse, error) {
	t, err := s.transferRepo.FindByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if err := t.Accept(); err != nil {
		return nil, err
	}

	v, err := s.voucherRepo.FindByID(ctx, t.VoucherID)
	if err != nil {
		return nil, err
	}
	if err := v.TransferTo(t.ToCustomerID); err != nil {
		return nil, err
	}
	if err := s.voucherRepo.SaveWithLock(ctx, v); err != nil {
		return nil, err
	}
	if err := s.transferRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	if err := s.breakCaseIfIntact(ctx, v, entitlement.BreakReasonTransfer); err != nil {
		return nil, err
	}

	s.publishAggregate(ctx, v)
	s.audit(ctx, voucherRef(v.ID), "transferred", "Changed holder to customer "+t.ToCustomerID.String()+" via transfer "+t.ID.String())
	return ToTransferResponse(t), nil
}

// CancelTransfer withdraws a pending transfer
func (s *VoucherService) CancelTransfer(ctx context.Context, transferID uuid.UUID) (*TransferResponse, error) {
	t, err := s.transferRepo.FindByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if err := t.Cancel(); err != nil {
		return nil, err
	}
	if err := s.transferRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	s.audit(ctx, transferRef(t.ID), "cancelled", "Offer withdrawn by the sender")
	return ToTransferResponse(t), nil
}

// Redeem consumes a voucher. Supply is not released; the bottle has
// been shipped or consumed. Redeeming a member of an intact case
// entitlement breaks the case (partial redemption).
func (s *VoucherService) Redeem(ctx context.Context, voucherID uuid.UUID) (*VoucherResponse, error) {
	v, err := s.voucherRepo.FindByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if v.RequiresAttention {
		return nil, shared.NewDomainErrorf(shared.CodeVoucherIneligible,
			"Voucher requires attention: %s", v.AttentionReason)
	}
	if err := v.Redeem(); err != nil {
		return nil, err
	}
	if err := s.voucherRepo.SaveWithLock(ctx, v); err != nil {
		return nil, err
	}

	if err := s.breakCaseIfIntact(ctx, v, entitlement.BreakReasonPartialRedemption); err != nil {
		return nil, err
	}

	s.publishAggregate(ctx, v)
	s.audit(ctx, voucherRef(v.ID), "redeemed", "Consumed outside fulfillment")
	return ToVoucherResponse(v), nil
}

// Cancel voids an issued voucher and returns its supply to the
// allocation. The release is a conditional update mirroring the
// reservation, inside the same transaction as the voucher update.
func (s *VoucherService) Cancel(ctx context.Context, voucherID uuid.UUID) (*VoucherResponse, error) {
	var cancelled *entitlement.Voucher
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		v, err := repos.VoucherRepo().FindByID(ctx, voucherID)
		if err != nil {
			return err
		}
		if v.RequiresAttention {
			return shared.NewDomainErrorf(shared.CodeVoucherIneligible,
				"Voucher requires attention: %s", v.AttentionReason)
		}
		if err := v.Cancel(); err != nil {
			return err
		}
		if err := repos.VoucherRepo().SaveWithLock(ctx, v); err != nil {
			return err
		}
		if _, err := repos.AllocationRepo().ReleaseSupply(ctx, v.AllocationID, 1); err != nil {
			return err
		}
		cancelled = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishAggregate(ctx, cancelled)
	s.audit(ctx, voucherRef(cancelled.ID), "cancelled", "Voided, supply returned to allocation "+cancelled.AllocationID.String())
	return ToVoucherResponse(cancelled), nil
}

// FlagForAttention quarantines a voucher pending manual review
func (s *VoucherService) FlagForAttention(ctx context.Context, voucherID uuid.UUID, reason string) (*VoucherResponse, error) {
	v, err := s.voucherRepo.FindByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	v.FlagForAttention(reason)
	if err := s.voucherRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	s.publishAggregate(ctx, v)
	s.audit(ctx, voucherRef(v.ID), "flagged", reason)
	return ToVoucherResponse(v), nil
}

// ClearAttention lifts the quarantine after review
func (s *VoucherService) ClearAttention(ctx context.Context, voucherID uuid.UUID) (*VoucherResponse, error) {
	v, err := s.voucherRepo.FindByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	v.ClearAttention()
	if err := s.voucherRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	s.audit(ctx, voucherRef(v.ID), "attention_cleared", "Quarantine lifted after review")
	return ToVoucherResponse(v), nil
}

// BreakCase breaks a case entitlement manually
func (s *VoucherService) BreakCase(ctx context.Context, caseID uuid.UUID) (*CaseEntitlementResponse, error) {
	ce, err := s.caseRepo.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	ce.Break(entitlement.BreakReasonManual)
	if err := s.caseRepo.Save(ctx, ce); err != nil {
		return nil, err
	}
	s.publishAggregate(ctx, ce)
	s.audit(ctx, shared.AuditRef{EntityType: shared.AuditEntityCaseEntitlement, EntityID: ce.ID},
		"broken", "Broken manually by an operator")
	return ToCaseEntitlementResponse(ce), nil
}

// GetCase retrieves a case entitlement
func (s *VoucherService) GetCase(ctx context.Context, caseID uuid.UUID) (*CaseEntitlementResponse, error) {
	ce, err := s.caseRepo.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return ToCaseEntitlementResponse(ce), nil
}

// breakCaseIfIntact breaks the voucher's case entitlement when one is
// set and still intact. Breaking is idempotent; a concurrent break
// loses nothing.
func (s *VoucherService) breakCaseIfIntact(ctx context.Context, v *entitlement.Voucher, reason entitlement.BreakReason) error {
	if v.CaseEntitlementID == nil {
		return nil
	}
	ce, err := s.caseRepo.FindByID(ctx, *v.CaseEntitlementID)
	if err != nil {
		return err
	}
	if ce.IsBroken() {
		return nil
	}
	ce.Break(reason)
	if err := s.caseRepo.Save(ctx, ce); err != nil {
		return err
	}
	s.publishAggregate(ctx, ce)
	return nil
}
