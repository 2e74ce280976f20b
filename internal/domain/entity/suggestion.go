package entity

import "time"

// Suggestion confidence values emitted by the cross-matching algorithm.
// The broader HIGH/MEDIUM/LOW/MANUAL vocabulary belongs to
// ReconciliationMatch; cross-matching only ever produces these two.
const (
	SuggestionHigh   = "high"
	SuggestionMedium = "medium"
)

// MatchSuggestion is an ephemeral pairing of an unclaimed deposit with an
// unfunded voucher. Never persisted; built fresh on every call.
type MatchSuggestion struct {
	DepositID   int64     `json:"deposit_id"`
	VoucherID   int64     `json:"voucher_id"`
	Amount      float64   `json:"amount"`
	DepositDate time.Time `json:"deposit_date"`
	DepositTime string    `json:"deposit_time,omitempty"`
	VoucherDate time.Time `json:"voucher_date"`
	HouseNumber *int      `json:"house_number,omitempty"`
	Confidence  string    `json:"confidence"`
	Reason      string    `json:"reason"`
}

// MatchSuggestionResult is the aggregate returned by FindMatchSuggestions.
type MatchSuggestionResult struct {
	TotalSuggestions int                `json:"total_suggestions"`
	HighConfidence   int                `json:"high_confidence"`
	MediumConfidence int                `json:"medium_confidence"`
	Suggestions      []*MatchSuggestion `json:"suggestions"`
}
