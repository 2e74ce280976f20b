package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/condoops/bank-reconciliation/internal/application/port"
	"github.com/condoops/bank-reconciliation/internal/domain/entity"
	"go.uber.org/zap"
)

// PeriodRepository implements port.PeriodRepository
type PeriodRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPeriodRepository creates a new period repository
func NewPeriodRepository(db *sql.DB, logger *zap.Logger) port.PeriodRepository {
	return &PeriodRepository{
		db:     db,
		logger: logger,
	}
}

// FindByYearAndMonth retrieves a period, (nil, nil) when absent
func (r *PeriodRepository) FindByYearAndMonth(ctx context.Context, year, month int) (*entity.Period, error) {
	query := `
		SELECT id, year, month, created_at
		FROM periods
		WHERE year = ? AND month = ?
	`

	var period entity.Period
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, year, month).Scan(
		&period.ID,
		&period.Year,
		&period.Month,
		&period.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find period",
			zap.Int("year", year), zap.Int("month", month), zap.Error(err))
		return nil, fmt.Errorf("failed to find period: %w", err)
	}

	return &period, nil
}

// EnsureExists returns the period for year/month, creating it when absent
func (r *PeriodRepository) EnsureExists(ctx context.Context, year, month int) (*entity.Period, error) {
	period, err := r.FindByYearAndMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if period != nil {
		return period, nil
	}

	query := `INSERT INTO periods (year, month) VALUES (?, ?)`
	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, year, month)
	if err != nil {
		// A concurrent insert may have won the race; re-read before failing.
		if existing, findErr := r.FindByYearAndMonth(ctx, year, month); findErr == nil && existing != nil {
			return existing, nil
		}
		r.logger.Error("Failed to create period",
			zap.Int("year", year), zap.Int("month", month), zap.Error(err))
		return nil, fmt.Errorf("failed to create period: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return &entity.Period{ID: id, Year: year, Month: month}, nil
}

// Verify interface compliance
var _ port.PeriodRepository = (*PeriodRepository)(nil)
