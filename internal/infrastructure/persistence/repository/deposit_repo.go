package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/condoops/bank-reconciliation/internal/application/port"
	"github.com/condoops/bank-reconciliation/internal/domain/entity"
	"go.uber.org/zap"
)

// DepositRepository implements port.DepositRepository
type DepositRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDepositRepository creates a new deposit repository
func NewDepositRepository(db *sql.DB, logger *zap.Logger) port.DepositRepository {
	return &DepositRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a deposit by id, (nil, nil) when absent
func (r *DepositRepository) GetByID(ctx context.Context, id int64) (*entity.BankDeposit, error) {
	query := `
		SELECT id, amount, date, time, concept, is_deposit, confirmation_status, created_at
		FROM bank_transactions
		WHERE id = ?
	`

	deposit, err := scanDeposit(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get deposit", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get deposit: %w", err)
	}

	return deposit, nil
}

// FindUnclaimed returns deposits that still have a NOT_FOUND or CONFLICT
// status row. The deposit's own confirmation flag is deliberately not part
// of the predicate; the status table alone decides.
func (r *DepositRepository) FindUnclaimed(ctx context.Context) ([]*entity.BankDeposit, error) {
	query := `
		SELECT DISTINCT bt.id, bt.amount, bt.date, bt.time, bt.concept,
			bt.is_deposit, bt.confirmation_status, bt.created_at
		FROM bank_transactions bt
		INNER JOIN transaction_status ts ON ts.transaction_id = bt.id
		WHERE bt.is_deposit = 1
			AND ts.validation_status IN (?, ?)
		ORDER BY bt.date, bt.time
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query,
		entity.ValidationNotFound, entity.ValidationConflict)
	if err != nil {
		r.logger.Error("Failed to find unclaimed deposits", zap.Error(err))
		return nil, fmt.Errorf("failed to find unclaimed deposits: %w", err)
	}
	defer rows.Close()

	var deposits []*entity.BankDeposit
	for rows.Next() {
		deposit, err := scanDeposit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deposit: %w", err)
		}
		deposits = append(deposits, deposit)
	}

	return deposits, rows.Err()
}

// SetConfirmed updates the deposit's confirmation flag
func (r *DepositRepository) SetConfirmed(ctx context.Context, id int64, confirmed bool) error {
	query := `UPDATE bank_transactions SET confirmation_status = ? WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, confirmed, id)
	if err != nil {
		r.logger.Error("Failed to update deposit confirmation", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to update deposit confirmation: %w", err)
	}

	return nil
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDeposit(row rowScanner) (*entity.BankDeposit, error) {
	var deposit entity.BankDeposit
	var timeOfDay, concept sql.NullString

	err := row.Scan(
		&deposit.ID,
		&deposit.Amount,
		&deposit.Date,
		&timeOfDay,
		&concept,
		&deposit.IsDeposit,
		&deposit.ConfirmationStatus,
		&deposit.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if timeOfDay.Valid {
		deposit.TimeOfDay = timeOfDay.String
	}
	if concept.Valid {
		deposit.Concept = concept.String
	}

	return &deposit, nil
}

// Verify interface compliance
var _ port.DepositRepository = (*DepositRepository)(nil)
