package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/condoops/bank-reconciliation/internal/application/port"
	"github.com/condoops/bank-reconciliation/internal/domain/entity"
	"go.uber.org/zap"
)

// ChargeRepository implements port.ChargeRepository
type ChargeRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewChargeRepository creates a new charge repository
func NewChargeRepository(db *sql.DB, logger *zap.Logger) port.ChargeRepository {
	return &ChargeRepository{
		db:     db,
		logger: logger,
	}
}

// FindOutstanding returns unpaid charges for a house and period, oldest first
func (r *ChargeRepository) FindOutstanding(ctx context.Context, houseID, periodID int64) ([]*entity.HouseCharge, error) {
	query := `
		SELECT id, house_id, period_id, amount, paid_amount, created_at
		FROM house_charges
		WHERE house_id = ? AND period_id = ? AND paid_amount < amount
		ORDER BY created_at, id
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, houseID, periodID)
	if err != nil {
		r.logger.Error("Failed to find outstanding charges",
			zap.Int64("house_id", houseID), zap.Int64("period_id", periodID), zap.Error(err))
		return nil, fmt.Errorf("failed to find outstanding charges: %w", err)
	}
	defer rows.Close()

	var charges []*entity.HouseCharge
	for rows.Next() {
		var charge entity.HouseCharge
		err := rows.Scan(
			&charge.ID,
			&charge.HouseID,
			&charge.PeriodID,
			&charge.Amount,
			&charge.PaidAmount,
			&charge.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan charge: %w", err)
		}
		charges = append(charges, &charge)
	}

	return charges, rows.Err()
}

// ApplyPayment increases the paid amount of a charge
func (r *ChargeRepository) ApplyPayment(ctx context.Context, chargeID int64, amount float64) error {
	query := `UPDATE house_charges SET paid_amount = paid_amount + ? WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, amount, chargeID)
	if err != nil {
		r.logger.Error("Failed to apply payment", zap.Int64("charge_id", chargeID), zap.Error(err))
		return fmt.Errorf("failed to apply payment: %w", err)
	}

	return nil
}

var _ port.ChargeRepository = (*ChargeRepository)(nil)
