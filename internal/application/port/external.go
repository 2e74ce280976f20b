package port

import "context"

// AllocationInput describes a confirmed amount to distribute against a
// house's obligations for a period.
type AllocationInput struct {
	RecordID           int64
	HouseID            int64
	AmountToDistribute float64
	PeriodID           int64
}

// AllocationResult reports how the amount was distributed.
type AllocationResult struct {
	Distributed float64 `json:"distributed"`
	Remaining   float64 `json:"remaining"`
	ChargesPaid int     `json:"charges_paid"`
}

// AllocationExecutor distributes a confirmed payment. The reconciliation
// workflow calls it after its transaction has committed and contains any
// error it returns; allocation failures never undo a reconciliation.
type AllocationExecutor interface {
	Execute(ctx context.Context, input AllocationInput) (*AllocationResult, error)
}
