package service

import "errors"

// Failure taxonomy for the reconciliation-application workflow. Everything
// here is rejected before the atomic phase; transactional failures propagate
// as the original wrapped error instead.
var (
	// Invalid input
	ErrHouseNumberOutOfRange = errors.New("house number outside the valid range")

	// Not found
	ErrDepositNotFound     = errors.New("deposit not found")
	ErrDepositNotUnclaimed = errors.New("deposit has no unclaimed status records")
	ErrVoucherNotFound     = errors.New("voucher not found")

	// Conflict
	ErrVoucherAlreadyConfirmed = errors.New("voucher is already confirmed")
)
