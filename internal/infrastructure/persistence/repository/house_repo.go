package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/condoops/bank-reconciliation/internal/application/port"
	"github.com/condoops/bank-reconciliation/internal/domain/entity"
	"go.uber.org/zap"
)

// HouseRepository implements port.HouseRepository
type HouseRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHouseRepository creates a new house repository
func NewHouseRepository(db *sql.DB, logger *zap.Logger) port.HouseRepository {
	return &HouseRepository{
		db:     db,
		logger: logger,
	}
}

// GetByNumber retrieves a house by its number, (nil, nil) when absent
func (r *HouseRepository) GetByNumber(ctx context.Context, numberHouse int) (*entity.House, error) {
	query := `
		SELECT id, number_house, created_by, created_at
		FROM houses
		WHERE number_house = ?
	`

	var house entity.House
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, numberHouse).Scan(
		&house.ID,
		&house.NumberHouse,
		&house.CreatedBy,
		&house.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get house", zap.Int("number_house", numberHouse), zap.Error(err))
		return nil, fmt.Errorf("failed to get house: %w", err)
	}

	return &house, nil
}

// Create inserts a new house
func (r *HouseRepository) Create(ctx context.Context, house *entity.House) error {
	query := `INSERT INTO houses (number_house, created_by) VALUES (?, ?)`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, house.NumberHouse, house.CreatedBy)
	if err != nil {
		r.logger.Error("Failed to create house", zap.Int("number_house", house.NumberHouse), zap.Error(err))
		return fmt.Errorf("failed to create house: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	house.ID = id
	return nil
}

// Verify interface compliance
var _ port.HouseRepository = (*HouseRepository)(nil)
