package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/condoops/bank-reconciliation/internal/application/port"
	"github.com/condoops/bank-reconciliation/internal/domain/entity"
	"go.uber.org/zap"
)

// VoucherRepository implements port.VoucherRepository
type VoucherRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVoucherRepository creates a new voucher repository
func NewVoucherRepository(db *sql.DB, logger *zap.Logger) port.VoucherRepository {
	return &VoucherRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a voucher by id, (nil, nil) when absent
func (r *VoucherRepository) GetByID(ctx context.Context, id int64) (*entity.Voucher, error) {
	query := `
		SELECT id, amount, date, confirmation_status, created_at
		FROM vouchers
		WHERE id = ?
	`

	var voucher entity.Voucher
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&voucher.ID,
		&voucher.Amount,
		&voucher.Date,
		&voucher.ConfirmationStatus,
		&voucher.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get voucher", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}

	return &voucher, nil
}

// FindUnfunded returns unconfirmed vouchers with no CONFIRMED status row
func (r *VoucherRepository) FindUnfunded(ctx context.Context) ([]*entity.Voucher, error) {
	query := `
		SELECT v.id, v.amount, v.date, v.confirmation_status, v.created_at
		FROM vouchers v
		WHERE v.confirmation_status = 0
			AND NOT EXISTS (
				SELECT 1 FROM transaction_status ts
				WHERE ts.voucher_id = v.id AND ts.validation_status = ?
			)
		ORDER BY v.date
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, entity.ValidationConfirmed)
	if err != nil {
		r.logger.Error("Failed to find unfunded vouchers", zap.Error(err))
		return nil, fmt.Errorf("failed to find unfunded vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []*entity.Voucher
	for rows.Next() {
		var voucher entity.Voucher
		err := rows.Scan(
			&voucher.ID,
			&voucher.Amount,
			&voucher.Date,
			&voucher.ConfirmationStatus,
			&voucher.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher: %w", err)
		}
		vouchers = append(vouchers, &voucher)
	}

	return vouchers, rows.Err()
}

// FindHouseNumbers resolves house numbers for vouchers through the
// record -> house_record -> house chain. Rows come back oldest first, so
// the map overwrite leaves the most recent record's house per voucher.
func (r *VoucherRepository) FindHouseNumbers(ctx context.Context, voucherIDs []int64) (map[int64]int, error) {
	if len(voucherIDs) == 0 {
		return map[int64]int{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(voucherIDs)), ",")
	query := fmt.Sprintf(`
		SELECT rec.voucher_id, h.number_house
		FROM records rec
		INNER JOIN house_records hr ON hr.record_id = rec.id
		INNER JOIN houses h ON h.id = hr.house_id
		WHERE rec.voucher_id IN (%s)
		ORDER BY rec.created_at, rec.id
	`, placeholders)

	args := make([]interface{}, len(voucherIDs))
	for i, id := range voucherIDs {
		args[i] = id
	}

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to resolve voucher house numbers", zap.Error(err))
		return nil, fmt.Errorf("failed to resolve voucher house numbers: %w", err)
	}
	defer rows.Close()

	houseNumbers := make(map[int64]int)
	for rows.Next() {
		var voucherID int64
		var numberHouse int
		if err := rows.Scan(&voucherID, &numberHouse); err != nil {
			return nil, fmt.Errorf("failed to scan house number: %w", err)
		}
		houseNumbers[voucherID] = numberHouse
	}

	return houseNumbers, rows.Err()
}

// SetConfirmed updates the voucher's confirmation flag
func (r *VoucherRepository) SetConfirmed(ctx context.Context, id int64, confirmed bool) error {
	query := `UPDATE vouchers SET confirmation_status = ? WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, confirmed, id)
	if err != nil {
		r.logger.Error("Failed to update voucher confirmation", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to update voucher confirmation: %w", err)
	}

	return nil
}

// Verify interface compliance
var _ port.VoucherRepository = (*VoucherRepository)(nil)
