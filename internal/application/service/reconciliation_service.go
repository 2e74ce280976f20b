package service

import (
	"context"
	"fmt"
	"time"

	"github.com/condoops/bank-reconciliation/internal/application/port"
	"github.com/condoops/bank-reconciliation/internal/config"
	"github.com/condoops/bank-reconciliation/internal/domain/entity"
)

// ApplyMatchInput identifies the accepted pairing and who approved it.
type ApplyMatchInput struct {
	DepositID   int64
	VoucherID   int64
	HouseNumber int
	UserID      int64
	AdminNotes  string
}

// ReconciliationDetail echoes the committed pairing back to the caller.
type ReconciliationDetail struct {
	DepositID   int64  `json:"deposit_id"`
	VoucherID   int64  `json:"voucher_id"`
	HouseNumber int    `json:"house_number"`
	Status      string `json:"status"`
}

// ApplyMatchResult is the response of ApplyMatchSuggestion. AppliedAt is the
// commit timestamp, not the allocation timestamp; allocation may have failed
// silently afterwards.
type ApplyMatchResult struct {
	Message        string               `json:"message"`
	Reconciliation ReconciliationDetail `json:"reconciliation"`
	AppliedAt      time.Time            `json:"applied_at"`
}

// ReconciliationService commits an accepted match as durable state
type ReconciliationService interface {
	ApplyMatchSuggestion(ctx context.Context, input ApplyMatchInput) (*ApplyMatchResult, error)
}

type reconciliationServiceImpl struct {
	depositRepo     port.DepositRepository
	voucherRepo     port.VoucherRepository
	statusRepo      port.StatusRepository
	houseRepo       port.HouseRepository
	recordRepo      port.RecordRepository
	houseRecordRepo port.HouseRecordRepository
	auditRepo       port.ApprovalAuditRepository
	periodRepo      port.PeriodRepository
	allocator       port.AllocationExecutor
	txManager       port.TransactionManager
	cfg             config.ReconciliationConfig
	logger          Logger
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	depositRepo port.DepositRepository,
	voucherRepo port.VoucherRepository,
	statusRepo port.StatusRepository,
	houseRepo port.HouseRepository,
	recordRepo port.RecordRepository,
	houseRecordRepo port.HouseRecordRepository,
	auditRepo port.ApprovalAuditRepository,
	periodRepo port.PeriodRepository,
	allocator port.AllocationExecutor,
	txManager port.TransactionManager,
	cfg config.ReconciliationConfig,
	logger Logger,
) ReconciliationService {
	return &reconciliationServiceImpl{
		depositRepo:     depositRepo,
		voucherRepo:     voucherRepo,
		statusRepo:      statusRepo,
		houseRepo:       houseRepo,
		recordRepo:      recordRepo,
		houseRecordRepo: houseRecordRepo,
		auditRepo:       auditRepo,
		periodRepo:      periodRepo,
		allocator:       allocator,
		txManager:       txManager,
		cfg:             cfg,
		logger:          logger,
	}
}

// ApplyMatchSuggestion validates preconditions in order, commits the pairing
// atomically, and then triggers downstream allocation with best-effort error
// containment.
//
// Unclaimed guard invariant: the deposit's own confirmation flag is never
// consulted here. Upstream surplus persistence flips that flag to suppress
// reprocessing, so only the status table's validation_status decides whether
// a deposit can still be reconciled.
func (s *reconciliationServiceImpl) ApplyMatchSuggestion(ctx context.Context, input ApplyMatchInput) (*ApplyMatchResult, error) {
	if input.HouseNumber < s.cfg.MinHouseNumber || input.HouseNumber > s.cfg.MaxHouseNumber {
		return nil, fmt.Errorf("%w: %d (valid %d-%d)", ErrHouseNumberOutOfRange,
			input.HouseNumber, s.cfg.MinHouseNumber, s.cfg.MaxHouseNumber)
	}

	deposit, err := s.depositRepo.GetByID(ctx, input.DepositID)
	if err != nil {
		return nil, fmt.Errorf("get deposit: %w", err)
	}
	if deposit == nil {
		return nil, fmt.Errorf("%w: %d", ErrDepositNotFound, input.DepositID)
	}

	statuses, err := s.statusRepo.FindUnresolvedByTransaction(ctx, input.DepositID)
	if err != nil {
		return nil, fmt.Errorf("get deposit statuses: %w", err)
	}
	if len(statuses) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrDepositNotUnclaimed, input.DepositID)
	}

	voucher, err := s.voucherRepo.GetByID(ctx, input.VoucherID)
	if err != nil {
		return nil, fmt.Errorf("get voucher: %w", err)
	}
	if voucher == nil {
		return nil, fmt.Errorf("%w: %d", ErrVoucherNotFound, input.VoucherID)
	}
	if voucher.ConfirmationStatus {
		return nil, fmt.Errorf("%w: %d", ErrVoucherAlreadyConfirmed, input.VoucherID)
	}

	appliedAt := time.Now()
	reason := fmt.Sprintf("Manually confirmed against voucher %d by user %d", input.VoucherID, input.UserID)

	var house *entity.House
	var record *entity.PaymentRecord

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		house, err = s.houseRepo.GetByNumber(txCtx, input.HouseNumber)
		if err != nil {
			return fmt.Errorf("get house: %w", err)
		}
		if house == nil {
			// Auto-create so an operator is never blocked by missing
			// master data; attributed to the system user.
			house = &entity.House{
				NumberHouse: input.HouseNumber,
				CreatedBy:   s.cfg.SystemUserID,
			}
			if err := s.houseRepo.Create(txCtx, house); err != nil {
				return fmt.Errorf("create house: %w", err)
			}
			s.logger.Info("House auto-created during reconciliation",
				"number_house", input.HouseNumber, "house_id", house.ID)
		}

		// Every NOT_FOUND/CONFLICT row transitions at once; duplicate
		// status rows from older data-migration gaps get closed together.
		affected, err := s.statusRepo.ConfirmUnresolved(txCtx,
			input.DepositID, input.VoucherID, input.HouseNumber, reason, appliedAt)
		if err != nil {
			return fmt.Errorf("confirm status rows: %w", err)
		}
		if affected == 0 {
			// A concurrent apply already transitioned this deposit. The
			// contract does not surface this as a conflict; logged only.
			s.logger.Warn("Status update affected no rows",
				"deposit_id", input.DepositID)
		}

		if err := s.depositRepo.SetConfirmed(txCtx, input.DepositID, true); err != nil {
			return fmt.Errorf("confirm deposit: %w", err)
		}
		if err := s.voucherRepo.SetConfirmed(txCtx, input.VoucherID, true); err != nil {
			return fmt.Errorf("confirm voucher: %w", err)
		}

		record = &entity.PaymentRecord{
			StatusID:  statuses[0].ID,
			VoucherID: input.VoucherID,
		}
		if err := s.recordRepo.Create(txCtx, record); err != nil {
			return fmt.Errorf("create record: %w", err)
		}

		houseRecord := &entity.HouseRecord{
			RecordID: record.ID,
			HouseID:  house.ID,
		}
		if err := s.houseRecordRepo.Create(txCtx, houseRecord); err != nil {
			return fmt.Errorf("create house record: %w", err)
		}

		approval := &entity.ManualValidationApproval{
			TransactionID: input.DepositID,
			VoucherID:     input.VoucherID,
			ApprovedBy:    input.UserID,
			Notes:         input.AdminNotes,
			CreatedAt:     appliedAt,
		}
		if err := s.auditRepo.Create(txCtx, approval); err != nil {
			return fmt.Errorf("create approval audit: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Reconciliation transaction failed",
			"deposit_id", input.DepositID, "voucher_id", input.VoucherID, "error", err)
		return nil, err
	}

	s.logger.Info("Reconciliation committed",
		"deposit_id", input.DepositID,
		"voucher_id", input.VoucherID,
		"number_house", input.HouseNumber,
		"approved_by", input.UserID)

	// Outside the atomic boundary on purpose: the reconciliation is already
	// durable, and allocation can be retried or fixed later. Failures here
	// are contained.
	s.allocate(ctx, deposit, house, record, appliedAt)

	return &ApplyMatchResult{
		Message: "Match suggestion applied",
		Reconciliation: ReconciliationDetail{
			DepositID:   input.DepositID,
			VoucherID:   input.VoucherID,
			HouseNumber: input.HouseNumber,
			Status:      "confirmed",
		},
		AppliedAt: appliedAt,
	}, nil
}

// allocate distributes the confirmed amount against the house's charges for
// the current period. Never propagates an error.
func (s *reconciliationServiceImpl) allocate(ctx context.Context, deposit *entity.BankDeposit, house *entity.House, record *entity.PaymentRecord, appliedAt time.Time) {
	period, err := s.periodRepo.EnsureExists(ctx, appliedAt.Year(), int(appliedAt.Month()))
	if err != nil {
		s.logger.Error("Allocation skipped: could not resolve period",
			"deposit_id", deposit.ID, "error", err)
		return
	}

	result, err := s.allocator.Execute(ctx, port.AllocationInput{
		RecordID:           record.ID,
		HouseID:            house.ID,
		AmountToDistribute: deposit.Amount,
		PeriodID:           period.ID,
	})
	if err != nil {
		s.logger.Error("Allocation failed after reconciliation commit",
			"deposit_id", deposit.ID,
			"house_id", house.ID,
			"period_id", period.ID,
			"error", err)
		return
	}

	s.logger.Info("Payment allocated",
		"deposit_id", deposit.ID,
		"house_id", house.ID,
		"distributed", result.Distributed,
		"remaining", result.Remaining,
		"charges_paid", result.ChargesPaid)
}
