package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/condoops/bank-reconciliation/internal/application/port"
	"github.com/condoops/bank-reconciliation/internal/domain/entity"
	"go.uber.org/zap"
)

// StatusRepository implements port.StatusRepository
type StatusRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStatusRepository creates a new status repository
func NewStatusRepository(db *sql.DB, logger *zap.Logger) port.StatusRepository {
	return &StatusRepository{
		db:     db,
		logger: logger,
	}
}

// FindUnresolvedByTransaction returns the deposit's NOT_FOUND/CONFLICT
// status rows, oldest first
func (r *StatusRepository) FindUnresolvedByTransaction(ctx context.Context, transactionID int64) ([]*entity.TransactionStatus, error) {
	query := `
		SELECT id, transaction_id, validation_status, voucher_id, number_house,
			reason, processed_at, created_at
		FROM transaction_status
		WHERE transaction_id = ?
			AND validation_status IN (?, ?)
		ORDER BY created_at, id
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query,
		transactionID, entity.ValidationNotFound, entity.ValidationConflict)
	if err != nil {
		r.logger.Error("Failed to find unresolved statuses",
			zap.Int64("transaction_id", transactionID), zap.Error(err))
		return nil, fmt.Errorf("failed to find unresolved statuses: %w", err)
	}
	defer rows.Close()

	var statuses []*entity.TransactionStatus
	for rows.Next() {
		var status entity.TransactionStatus
		var voucherID sql.NullInt64
		var numberHouse sql.NullInt64
		var reason sql.NullString
		var processedAt sql.NullTime

		err := rows.Scan(
			&status.ID,
			&status.TransactionID,
			&status.ValidationStatus,
			&voucherID,
			&numberHouse,
			&reason,
			&processedAt,
			&status.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}

		if voucherID.Valid {
			status.VoucherID = &voucherID.Int64
		}
		if numberHouse.Valid {
			n := int(numberHouse.Int64)
			status.NumberHouse = &n
		}
		if reason.Valid {
			status.Reason = reason.String
		}
		if processedAt.Valid {
			status.ProcessedAt = &processedAt.Time
		}

		statuses = append(statuses, &status)
	}

	return statuses, rows.Err()
}

// ConfirmUnresolved transitions every unresolved row of the deposit in one
// statement. The WHERE clause makes a concurrent second apply see zero rows
// affected instead of corrupting state.
func (r *StatusRepository) ConfirmUnresolved(ctx context.Context, transactionID, voucherID int64, houseNumber int, reason string, processedAt time.Time) (int64, error) {
	query := `
		UPDATE transaction_status
		SET validation_status = ?, voucher_id = ?, number_house = ?,
			reason = ?, processed_at = ?
		WHERE transaction_id = ?
			AND validation_status IN (?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		entity.ValidationConfirmed,
		voucherID,
		houseNumber,
		reason,
		processedAt,
		transactionID,
		entity.ValidationNotFound,
		entity.ValidationConflict,
	)
	if err != nil {
		r.logger.Error("Failed to confirm status rows",
			zap.Int64("transaction_id", transactionID), zap.Error(err))
		return 0, fmt.Errorf("failed to confirm status rows: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected, nil
}

// Verify interface compliance
var _ port.StatusRepository = (*StatusRepository)(nil)
