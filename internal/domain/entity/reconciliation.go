package entity

import "math"

// Confidence levels for an accepted or proposed match.
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
	ConfidenceManual = "MANUAL"
)

// Match criteria that contributed to a pairing.
const (
	CriterionAmount  = "AMOUNT"
	CriterionDate    = "DATE"
	CriterionConcept = "CONCEPT"
)

// ReconciliationMatch is the accepted result of pairing a deposit with
// (optionally) a voucher.
type ReconciliationMatch struct {
	TransactionID       int64    `json:"transaction_id"`
	Amount              float64  `json:"amount"`
	HouseNumber         int      `json:"house_number"`
	MatchCriteria       []string `json:"match_criteria"`
	ConfidenceLevel     string   `json:"confidence_level"`
	VoucherID           *int64   `json:"voucher_id,omitempty"`
	DateDifferenceHours *float64 `json:"date_difference_hours,omitempty"`
}

// IsHighConfidence reports whether the match was classified HIGH.
func (m *ReconciliationMatch) IsHighConfidence() bool {
	return m.ConfidenceLevel == ConfidenceHigh
}

// HasVoucher reports whether a voucher was paired with the transaction.
func (m *ReconciliationMatch) HasVoucher() bool {
	return m.VoucherID != nil
}

// UnfundedVoucher summarizes a voucher that failed to match any deposit.
type UnfundedVoucher struct {
	VoucherID int64   `json:"voucher_id"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason"`
}

// UnclaimedDeposit summarizes a deposit that failed to match any voucher.
type UnclaimedDeposit struct {
	TransactionID        int64   `json:"transaction_id"`
	Amount               float64 `json:"amount"`
	Reason               string  `json:"reason"`
	RequiresManualReview bool    `json:"requires_manual_review"`
	HouseNumber          *int    `json:"house_number,omitempty"`
}

// NewUnclaimedDeposit builds an unclaimed-deposit summary. Manual review is
// required by default.
func NewUnclaimedDeposit(transactionID int64, amount float64, reason string) UnclaimedDeposit {
	return UnclaimedDeposit{
		TransactionID:        transactionID,
		Amount:               amount,
		Reason:               reason,
		RequiresManualReview: true,
	}
}

// WeightedCandidate is a voucher option inside a manual validation case.
type WeightedCandidate struct {
	VoucherID           int64   `json:"voucher_id"`
	SimilarityScore     float64 `json:"similarity_score"`
	DateDifferenceHours float64 `json:"date_difference_hours"`
}

// ManualValidationCase is a deposit with two or more candidate vouchers to
// be resolved by a human.
type ManualValidationCase struct {
	TransactionID   int64               `json:"transaction_id"`
	Amount          float64             `json:"amount"`
	PossibleMatches []WeightedCandidate `json:"possible_matches"`
}

// HasMultipleOptions reports whether more than one candidate is in play.
func (c *ManualValidationCase) HasMultipleOptions() bool {
	return len(c.PossibleMatches) > 1
}

// ReconciliationSummary aggregates the counters of a reconciliation run.
type ReconciliationSummary struct {
	TotalProcessed           int `json:"total_processed"`
	Conciliados              int `json:"conciliados"`
	UnfundedVouchers         int `json:"unfunded_vouchers"`
	UnclaimedDeposits        int `json:"unclaimed_deposits"`
	RequiresManualValidation int `json:"requires_manual_validation"`
	CrossMatched             int `json:"cross_matched"`
}

// SuccessRate returns the reconciled percentage as a rounded integer,
// 0 when nothing was processed.
func (s *ReconciliationSummary) SuccessRate() int {
	if s.TotalProcessed == 0 {
		return 0
	}
	return int(math.Round(float64(s.Conciliados) / float64(s.TotalProcessed) * 100))
}

// HasManualReview reports whether any case awaits human validation.
func (s *ReconciliationSummary) HasManualReview() bool {
	return s.RequiresManualValidation > 0
}
