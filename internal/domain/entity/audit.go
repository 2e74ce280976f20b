package entity

import "time"

// ManualValidationApproval is the append-only audit record written once per
// accepted match application. Rows are never updated or deleted.
type ManualValidationApproval struct {
	ID            int64     `json:"id"`
	TransactionID int64     `json:"transaction_id"`
	VoucherID     int64     `json:"voucher_id"`
	ApprovedBy    int64     `json:"approved_by"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
