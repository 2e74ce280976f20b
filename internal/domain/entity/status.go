package entity

import "time"

// Validation statuses for a transaction status row. The reconciliation
// engine only transitions NOT_FOUND and CONFLICT rows; other values belong
// to upstream ingestion.
const (
	ValidationNotFound  = "NOT_FOUND"
	ValidationConflict  = "CONFLICT"
	ValidationConfirmed = "CONFIRMED"
)

// TransactionStatus is the per-deposit validation record. A deposit is
// unclaimed iff it has at least one row in NOT_FOUND or CONFLICT.
type TransactionStatus struct {
	ID               int64      `json:"id"`
	TransactionID    int64      `json:"transaction_id"`
	ValidationStatus string     `json:"validation_status"`
	VoucherID        *int64     `json:"voucher_id,omitempty"`
	NumberHouse      *int       `json:"number_house,omitempty"`
	Reason           string     `json:"reason,omitempty"`
	ProcessedAt      *time.Time `json:"processed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// IsUnresolved reports whether this row still gates the deposit as unclaimed.
func (s *TransactionStatus) IsUnresolved() bool {
	return s.ValidationStatus == ValidationNotFound || s.ValidationStatus == ValidationConflict
}
