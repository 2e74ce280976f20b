package entity

import "time"

// BankDeposit represents a persisted incoming bank transaction.
// ConfirmationStatus is set true both by a successful reconciliation and by
// the upstream surplus-persistence step, so it must never be used as the
// "unclaimed" guard; the status table is the single source of truth for
// that (see TransactionStatus).
type BankDeposit struct {
	ID                 int64     `json:"id"`
	Amount             float64   `json:"amount"`
	Date               time.Time `json:"date"`
	TimeOfDay          string    `json:"time,omitempty"` // "HH:MM" or "HH:MM:SS", may be empty
	Concept            string    `json:"concept,omitempty"`
	IsDeposit          bool      `json:"is_deposit"`
	ConfirmationStatus bool      `json:"confirmation_status"`
	CreatedAt          time.Time `json:"created_at"`
}
