package trading

import (
	"context"
	"time"

	"github.com/vintrade/backend/internal/domain/entitlement"
	"go.uber.org/zap"
)

// defaultExpirationBatch bounds a single sweep so a backlog cannot
// hold a worker indefinitely
const defaultExpirationBatch = 500

// TransferExpirationService closes pending voucher transfers whose
// acceptance window has passed. Expiry is also checked lazily at
// accept time; the sweep keeps the pending set clean for queries.
type TransferExpirationService struct {
	transferRepo entitlement.TransferRepository
	logger       *zap.Logger
}

// NewTransferExpirationService creates a new TransferExpirationService
func NewTransferExpirationService(transferRepo entitlement.TransferRepository, logger *zap.Logger) *TransferExpirationService {
	return &TransferExpirationService{
		transferRepo: transferRepo,
		logger:       logger,
	}
}

// ExpiredTransferStats contains statistics about one sweep
type ExpiredTransferStats struct {
	TotalExpired int       `json:"total_expired"`
	Closed       int       `json:"closed"`
	Failed       int       `json:"failed"`
	ProcessedAt  time.Time `json:"processed_at"`
}

// ExpireOverdueTransfers finds and closes all overdue pending transfers
func (s *TransferExpirationService) ExpireOverdueTransfers(ctx context.Context) (*ExpiredTransferStats, error) {
	stats := &ExpiredTransferStats{ProcessedAt: time.Now()}

	overdue, err := s.transferRepo.FindExpiredPending(ctx, time.Now(), defaultExpirationBatch)
	if err != nil {
		s.logger.Error("Failed to find expired transfers", zap.Error(err))
		return nil, err
	}

	stats.TotalExpired = len(overdue)
	if stats.TotalExpired == 0 {
		s.logger.Debug("No expired voucher transfers found")
		return stats, nil
	}

	for i := range overdue {
		t := &overdue[i]
		if !t.Expire() {
			// Accepted or cancelled between query and sweep
			continue
		}
		if err := s.transferRepo.Save(ctx, t); err != nil {
			s.logger.Error("Failed to close expired transfer",
				zap.String("transfer_id", t.ID.String()),
				zap.String("voucher_id", t.VoucherID.String()),
				zap.Error(err),
			)
			stats.Failed++
			continue
		}
		stats.Closed++
	}

	s.logger.Info("Completed transfer expiration sweep",
		zap.Int("total", stats.TotalExpired),
		zap.Int("closed", stats.Closed),
		zap.Int("failed", stats.Failed),
	)
	return stats, nil
}
