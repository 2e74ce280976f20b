package entity

import "time"

// House is a billable unit in the property association.
type House struct {
	ID          int64     `json:"id"`
	NumberHouse int       `json:"number_house"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// PaymentRecord links a confirmed transaction status row to the voucher
// that funded it.
type PaymentRecord struct {
	ID        int64     `json:"id"`
	StatusID  int64     `json:"status_id"`
	VoucherID int64     `json:"voucher_id"`
	CreatedAt time.Time `json:"created_at"`
}

// HouseRecord associates a payment record with the house it is credited to.
type HouseRecord struct {
	ID        int64     `json:"id"`
	RecordID  int64     `json:"record_id"`
	HouseID   int64     `json:"house_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Period is an accounting month.
type Period struct {
	ID        int64     `json:"id"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	CreatedAt time.Time `json:"created_at"`
}

// HouseCharge is an expected payment for a house within a period. Allocation
// distributes confirmed deposits against outstanding charges.
type HouseCharge struct {
	ID         int64     `json:"id"`
	HouseID    int64     `json:"house_id"`
	PeriodID   int64     `json:"period_id"`
	Amount     float64   `json:"amount"`
	PaidAmount float64   `json:"paid_amount"`
	CreatedAt  time.Time `json:"created_at"`
}

// Outstanding returns the unpaid remainder of the charge.
func (c *HouseCharge) Outstanding() float64 {
	if c.PaidAmount >= c.Amount {
		return 0
	}
	return c.Amount - c.PaidAmount
}
