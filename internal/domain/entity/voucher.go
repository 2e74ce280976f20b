package entity

import "time"

// Voucher is a payment receipt submitted by a resident, awaiting
// confirmation against a bank deposit.
type Voucher struct {
	ID                 int64     `json:"id"`
	Amount             float64   `json:"amount"`
	Date               time.Time `json:"date"`
	ConfirmationStatus bool      `json:"confirmation_status"`
	CreatedAt          time.Time `json:"created_at"`
}
