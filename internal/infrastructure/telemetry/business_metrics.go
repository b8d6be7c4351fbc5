// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the trading back office.
// It tracks voucher issuance, transfer activity, fulfillment bindings, and
// cellar health.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	voucherIssuedTotal    *Counter
	voucherAmountTotal    *Counter
	transferResolvedTotal *Counter
	bindingConfirmedTotal *Counter

	// Gauge metrics (point-in-time values)
	bottlesByState     *Gauge
	openExceptionCount *Gauge
	allocationHeadroom *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data providers for periodic collection
	cellarProvider CellarMetricsProvider
}

// CellarMetricsProvider provides cellar data for periodic metrics collection.
// This interface allows the telemetry layer to query inventory state without
// depending on the cellar domain directly.
type CellarMetricsProvider interface {
	// GetBottleCountsByState returns the number of serialized bottles per lifecycle state.
	GetBottleCountsByState(ctx context.Context) (map[string]int64, error)

	// GetOpenExceptionCount returns the number of unresolved inventory exceptions.
	GetOpenExceptionCount(ctx context.Context) (int64, error)

	// GetAllocationHeadroom returns remaining sellable quantity per active allocation.
	GetAllocationHeadroom(ctx context.Context) (map[uuid.UUID]int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	CellarProvider  CellarMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:          cfg.Meter,
		logger:         logger,
		stopChan:       make(chan struct{}),
		cellarProvider: cfg.CellarProvider,
	}

	// Initialize counter metrics
	var err error

	// Voucher metrics
	bm.voucherIssuedTotal, err = NewCounter(
		cfg.Meter,
		"vintrade_voucher_issued_total",
		"Total number of vouchers issued",
		"{vouchers}",
	)
	if err != nil {
		return nil, err
	}

	bm.voucherAmountTotal, err = NewCounter(
		cfg.Meter,
		"vintrade_voucher_amount_total",
		"Total sale amount of issued vouchers in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	// Transfer metrics
	bm.transferResolvedTotal, err = NewCounter(
		cfg.Meter,
		"vintrade_transfer_resolved_total",
		"Total number of resolved voucher transfers",
		"{transfers}",
	)
	if err != nil {
		return nil, err
	}

	// Binding metrics
	bm.bindingConfirmedTotal, err = NewCounter(
		cfg.Meter,
		"vintrade_binding_confirmed_total",
		"Total number of confirmed bottle bindings",
		"{bindings}",
	)
	if err != nil {
		return nil, err
	}

	// Cellar gauge metrics
	bm.bottlesByState, err = NewGauge(
		cfg.Meter,
		"vintrade_bottles_by_state",
		"Number of serialized bottles per lifecycle state",
		"{bottles}",
	)
	if err != nil {
		return nil, err
	}

	bm.openExceptionCount, err = NewGauge(
		cfg.Meter,
		"vintrade_inventory_open_exception_count",
		"Number of unresolved inventory exceptions",
		"{exceptions}",
	)
	if err != nil {
		return nil, err
	}

	bm.allocationHeadroom, err = NewGauge(
		cfg.Meter,
		"vintrade_allocation_headroom",
		"Remaining sellable quantity per active allocation",
		"{bottles}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Voucher Metrics
// =============================================================================

// RecordVoucherIssued records voucher issuance for a sale.
// This should be called from the application layer when a voucher set is issued.
func (bm *BusinessMetrics) RecordVoucherIssued(ctx context.Context, allocationID uuid.UUID, count int64) {
	bm.voucherIssuedTotal.Add(ctx, count,
		AttrAllocationID.String(allocationID.String()),
	)
}

// RecordVoucherAmount records the sale amount of an issued voucher set.
// Amount should be in the smallest currency unit (cents).
func (bm *BusinessMetrics) RecordVoucherAmount(ctx context.Context, allocationID uuid.UUID, amountCents int64) {
	bm.voucherAmountTotal.Add(ctx, amountCents,
		AttrAllocationID.String(allocationID.String()),
	)
}

// RecordVoucherSale is a convenience method that records both issuance count
// and total sale amount for a voucher set.
func (bm *BusinessMetrics) RecordVoucherSale(ctx context.Context, allocationID uuid.UUID, count int64, unitPrice decimal.Decimal) {
	bm.RecordVoucherIssued(ctx, allocationID, count)

	// Convert to cents (multiply by 100)
	totalCents := unitPrice.Mul(decimal.NewFromInt(count)).Mul(decimal.NewFromInt(100)).IntPart()
	bm.RecordVoucherAmount(ctx, allocationID, totalCents)
}

// =============================================================================
// Transfer Metrics
// =============================================================================

// TransferOutcome represents the terminal state of a transfer for metrics labeling.
type TransferOutcome string

const (
	TransferOutcomeAccepted  TransferOutcome = "accepted"
	TransferOutcomeCancelled TransferOutcome = "cancelled"
	TransferOutcomeExpired   TransferOutcome = "expired"
)

// RecordTransferResolved records a voucher transfer reaching a terminal state.
func (bm *BusinessMetrics) RecordTransferResolved(ctx context.Context, outcome TransferOutcome) {
	bm.transferResolvedTotal.Inc(ctx,
		AttrTransferOutcome.String(string(outcome)),
	)
}

// =============================================================================
// Binding Metrics
// =============================================================================

// BindingMode distinguishes early bindings honored at confirmation from
// bindings chosen at pick time.
type BindingMode string

const (
	BindingModeEarly    BindingMode = "early"
	BindingModePickTime BindingMode = "pick_time"
)

// RecordBindingConfirmed records a confirmed bottle-to-line binding.
// This should be called when a shipping order line binding is confirmed.
func (bm *BusinessMetrics) RecordBindingConfirmed(ctx context.Context, mode BindingMode) {
	bm.bindingConfirmedTotal.Inc(ctx,
		AttrBindingMode.String(string(mode)),
	)
}

// =============================================================================
// Cellar Gauge Metrics
// =============================================================================

// RecordBottleCount records the current bottle count for a lifecycle state.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordBottleCount(ctx context.Context, state string, count int64) {
	bm.bottlesByState.Record(ctx, count,
		AttrBottleState.String(state),
	)
}

// RecordOpenExceptionCount records the number of unresolved inventory exceptions.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordOpenExceptionCount(ctx context.Context, count int64) {
	bm.openExceptionCount.Record(ctx, count)
}

// RecordAllocationHeadroom records the remaining sellable quantity of an allocation.
func (bm *BusinessMetrics) RecordAllocationHeadroom(ctx context.Context, allocationID uuid.UUID, remaining int64) {
	bm.allocationHeadroom.Record(ctx, remaining,
		AttrAllocationID.String(allocationID.String()),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects cellar metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectCellarMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectCellarMetrics(ctx)
		}
	}
}

// collectCellarMetrics collects cellar and allocation gauge metrics.
func (bm *BusinessMetrics) collectCellarMetrics(ctx context.Context) {
	if bm.cellarProvider == nil {
		bm.logger.Debug("No cellar provider configured, skipping cellar metrics collection")
		return
	}

	countsByState, err := bm.cellarProvider.GetBottleCountsByState(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get bottle counts by state", zap.Error(err))
	} else {
		for state, count := range countsByState {
			bm.RecordBottleCount(ctx, state, count)
		}
	}

	openCount, err := bm.cellarProvider.GetOpenExceptionCount(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get open exception count", zap.Error(err))
	} else {
		bm.RecordOpenExceptionCount(ctx, openCount)
	}

	headroom, err := bm.cellarProvider.GetAllocationHeadroom(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get allocation headroom", zap.Error(err))
	} else {
		for allocationID, remaining := range headroom {
			bm.RecordAllocationHeadroom(ctx, allocationID, remaining)
		}
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// =============================================================================
// Attribute Key Constants
// =============================================================================

// Business metrics attribute keys not already defined in metrics.go
var (
	AttrTransferOutcome = attribute.Key("transfer_outcome")
	AttrBindingMode     = attribute.Key("binding_mode")
	AttrBottleState     = attribute.Key("bottle_state")
)
