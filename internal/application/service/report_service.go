package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/condoops/bank-reconciliation/internal/domain/entity"
)

// ReportService renders the current match suggestion set as an Excel
// workbook for operators reviewing cross-match results offline.
type ReportService interface {
	ExportSuggestions(ctx context.Context) (*excelize.File, error)
}

type reportServiceImpl struct {
	matching MatchingService
	logger   Logger
}

// NewReportService creates a new ReportService
func NewReportService(matching MatchingService, logger Logger) ReportService {
	return &reportServiceImpl{
		matching: matching,
		logger:   logger,
	}
}

const suggestionsSheet = "Suggestions"

// ExportSuggestions runs the cross-matching pass and writes the result into
// a two-sheet workbook: one row per suggestion plus a summary sheet.
func (s *reportServiceImpl) ExportSuggestions(ctx context.Context) (*excelize.File, error) {
	result, err := s.matching.FindMatchSuggestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("find match suggestions: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", suggestionsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"Deposit ID", "Voucher ID", "Amount", "Deposit Date", "Deposit Time", "Voucher Date", "House", "Confidence", "Reason"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(suggestionsSheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, sug := range result.Suggestions {
		house := ""
		if sug.HouseNumber != nil {
			house = fmt.Sprintf("%d", *sug.HouseNumber)
		}
		values := []interface{}{
			sug.DepositID,
			sug.VoucherID,
			sug.Amount,
			sug.DepositDate.Format("2006-01-02"),
			sug.DepositTime,
			sug.VoucherDate.Format("2006-01-02"),
			house,
			sug.Confidence,
			sug.Reason,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(suggestionsSheet, cell, value); err != nil {
				return nil, fmt.Errorf("write suggestion row: %w", err)
			}
		}
	}

	if err := s.writeSummarySheet(f, result); err != nil {
		return nil, err
	}

	s.logger.Info("Suggestion report generated", "suggestions", result.TotalSuggestions)
	return f, nil
}

func (s *reportServiceImpl) writeSummarySheet(f *excelize.File, result *entity.MatchSuggestionResult) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Total suggestions", result.TotalSuggestions},
		{"High confidence", result.HighConfidence},
		{"Medium confidence", result.MediumConfidence},
	}
	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("write summary row: %w", err)
			}
		}
	}

	return nil
}
