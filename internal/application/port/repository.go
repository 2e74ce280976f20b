package port

import (
	"context"
	"time"

	"github.com/condoops/bank-reconciliation/internal/domain/entity"
)

// DepositRepository defines persistence operations for BankDeposit.
// Lookups return (nil, nil) when the row is absent.
type DepositRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.BankDeposit, error)

	// FindUnclaimed returns deposits (is_deposit = 1) with at least one
	// status row still in NOT_FOUND or CONFLICT.
	FindUnclaimed(ctx context.Context) ([]*entity.BankDeposit, error)

	SetConfirmed(ctx context.Context, id int64, confirmed bool) error
}

// VoucherRepository defines persistence operations for Voucher
type VoucherRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Voucher, error)

	// FindUnfunded returns vouchers with confirmation_status = 0 and no
	// CONFIRMED status row.
	FindUnfunded(ctx context.Context) ([]*entity.Voucher, error)

	// FindHouseNumbers resolves house numbers for vouchers via the
	// record/house-record/house join; the most recent record per voucher
	// wins. Vouchers with no chain are absent from the map.
	FindHouseNumbers(ctx context.Context, voucherIDs []int64) (map[int64]int, error)

	SetConfirmed(ctx context.Context, id int64, confirmed bool) error
}

// StatusRepository defines persistence operations for TransactionStatus
type StatusRepository interface {
	// FindUnresolvedByTransaction returns the NOT_FOUND/CONFLICT rows for a
	// deposit, oldest first.
	FindUnresolvedByTransaction(ctx context.Context, transactionID int64) ([]*entity.TransactionStatus, error)

	// ConfirmUnresolved transitions every NOT_FOUND/CONFLICT row of the
	// deposit to CONFIRMED in one statement, attaching the voucher, house
	// number, reason and processing timestamp. Returns rows affected.
	ConfirmUnresolved(ctx context.Context, transactionID, voucherID int64, houseNumber int, reason string, processedAt time.Time) (int64, error)
}

// HouseRepository defines persistence operations for House
type HouseRepository interface {
	GetByNumber(ctx context.Context, numberHouse int) (*entity.House, error)
	Create(ctx context.Context, house *entity.House) error
}

// RecordRepository defines persistence operations for PaymentRecord
type RecordRepository interface {
	Create(ctx context.Context, record *entity.PaymentRecord) error
}

// HouseRecordRepository defines persistence operations for HouseRecord
type HouseRecordRepository interface {
	Create(ctx context.Context, houseRecord *entity.HouseRecord) error
}

// ApprovalAuditRepository persists ManualValidationApproval rows. The table
// is append-only: no update or delete operation exists by contract.
type ApprovalAuditRepository interface {
	Create(ctx context.Context, approval *entity.ManualValidationApproval) error
}

// PeriodRepository defines persistence operations for Period
type PeriodRepository interface {
	FindByYearAndMonth(ctx context.Context, year, month int) (*entity.Period, error)

	// EnsureExists returns the period for year/month, creating it if absent.
	EnsureExists(ctx context.Context, year, month int) (*entity.Period, error)
}

// ChargeRepository defines persistence operations for HouseCharge
type ChargeRepository interface {
	// FindOutstanding returns charges with an unpaid remainder for a house
	// and period, oldest first.
	FindOutstanding(ctx context.Context, houseID, periodID int64) ([]*entity.HouseCharge, error)

	ApplyPayment(ctx context.Context, chargeID int64, amount float64) error
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
