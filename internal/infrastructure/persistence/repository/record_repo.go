package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/condoops/bank-reconciliation/internal/application/port"
	"github.com/condoops/bank-reconciliation/internal/domain/entity"
	"go.uber.org/zap"
)

// RecordRepository implements port.RecordRepository
type RecordRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *sql.DB, logger *zap.Logger) port.RecordRepository {
	return &RecordRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new payment record
func (r *RecordRepository) Create(ctx context.Context, record *entity.PaymentRecord) error {
	query := `INSERT INTO records (status_id, voucher_id) VALUES (?, ?)`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, record.StatusID, record.VoucherID)
	if err != nil {
		r.logger.Error("Failed to create record", zap.Error(err))
		return fmt.Errorf("failed to create record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	record.ID = id
	return nil
}

// HouseRecordRepository implements port.HouseRecordRepository
type HouseRecordRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHouseRecordRepository creates a new house-record repository
func NewHouseRecordRepository(db *sql.DB, logger *zap.Logger) port.HouseRecordRepository {
	return &HouseRecordRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new house-record association
func (r *HouseRecordRepository) Create(ctx context.Context, houseRecord *entity.HouseRecord) error {
	query := `INSERT INTO house_records (record_id, house_id) VALUES (?, ?)`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, houseRecord.RecordID, houseRecord.HouseID)
	if err != nil {
		r.logger.Error("Failed to create house record", zap.Error(err))
		return fmt.Errorf("failed to create house record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	houseRecord.ID = id
	return nil
}

// Verify interface compliance
var (
	_ port.RecordRepository      = (*RecordRepository)(nil)
	_ port.HouseRecordRepository = (*HouseRecordRepository)(nil)
)
