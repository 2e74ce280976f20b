package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/condoops/bank-reconciliation/internal/application/port"
	"github.com/condoops/bank-reconciliation/internal/domain/entity"
	"go.uber.org/zap"
)

// ApprovalAuditRepository implements port.ApprovalAuditRepository. The
// manual_validation_approvals table is append-only; this repository exposes
// no update or delete on purpose.
type ApprovalAuditRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewApprovalAuditRepository creates a new approval audit repository
func NewApprovalAuditRepository(db *sql.DB, logger *zap.Logger) port.ApprovalAuditRepository {
	return &ApprovalAuditRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends an approval audit row
func (r *ApprovalAuditRepository) Create(ctx context.Context, approval *entity.ManualValidationApproval) error {
	query := `
		INSERT INTO manual_validation_approvals (
			transaction_id, voucher_id, approved_by, notes, created_at
		) VALUES (?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		approval.TransactionID,
		approval.VoucherID,
		approval.ApprovedBy,
		approval.Notes,
		approval.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create approval audit row",
			zap.Int64("transaction_id", approval.TransactionID), zap.Error(err))
		return fmt.Errorf("failed to create approval audit row: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	approval.ID = id
	return nil
}

// Verify interface compliance
var _ port.ApprovalAuditRepository = (*ApprovalAuditRepository)(nil)
