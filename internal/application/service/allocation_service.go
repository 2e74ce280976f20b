package service

import (
	"context"
	"fmt"

	"github.com/condoops/bank-reconciliation/internal/application/port"
)

// AllocationService distributes a confirmed payment against a house's
// outstanding charges for a period, oldest first, partial on the last.
// Implements port.AllocationExecutor.
type AllocationService struct {
	chargeRepo port.ChargeRepository
	logger     Logger
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(chargeRepo port.ChargeRepository, logger Logger) *AllocationService {
	return &AllocationService{
		chargeRepo: chargeRepo,
		logger:     logger,
	}
}

// Execute applies the amount to outstanding charges until either runs out.
// Any remainder is reported back to the caller; surplus handling is an
// upstream concern.
func (s *AllocationService) Execute(ctx context.Context, input port.AllocationInput) (*port.AllocationResult, error) {
	charges, err := s.chargeRepo.FindOutstanding(ctx, input.HouseID, input.PeriodID)
	if err != nil {
		return nil, fmt.Errorf("find outstanding charges: %w", err)
	}

	result := &port.AllocationResult{Remaining: input.AmountToDistribute}

	for _, charge := range charges {
		if result.Remaining <= 0 {
			break
		}

		payment := charge.Outstanding()
		if payment > result.Remaining {
			payment = result.Remaining
		}
		if payment <= 0 {
			continue
		}

		if err := s.chargeRepo.ApplyPayment(ctx, charge.ID, payment); err != nil {
			return nil, fmt.Errorf("apply payment to charge %d: %w", charge.ID, err)
		}

		result.Distributed += payment
		result.Remaining -= payment
		if payment == charge.Outstanding() {
			result.ChargesPaid++
		}
	}

	s.logger.Info("Allocation executed",
		"record_id", input.RecordID,
		"house_id", input.HouseID,
		"period_id", input.PeriodID,
		"distributed", result.Distributed,
		"remaining", result.Remaining)

	return result, nil
}

// Verify interface compliance
var _ port.AllocationExecutor = (*AllocationService)(nil)
