package service

import (
	"context"
	"time"

	"github.com/condoops/bank-reconciliation/internal/application/port"
	"github.com/condoops/bank-reconciliation/internal/domain/entity"
)

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

type mockTxManager struct {
	rollbacks int
	commits   int
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

type mockDepositRepo struct {
	getByIDFunc       func(ctx context.Context, id int64) (*entity.BankDeposit, error)
	findUnclaimedFunc func(ctx context.Context) ([]*entity.BankDeposit, error)
	setConfirmedFunc  func(ctx context.Context, id int64, confirmed bool) error
	calls             int
}

func (m *mockDepositRepo) GetByID(ctx context.Context, id int64) (*entity.BankDeposit, error) {
	m.calls++
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockDepositRepo) FindUnclaimed(ctx context.Context) ([]*entity.BankDeposit, error) {
	m.calls++
	if m.findUnclaimedFunc != nil {
		return m.findUnclaimedFunc(ctx)
	}
	return nil, nil
}

func (m *mockDepositRepo) SetConfirmed(ctx context.Context, id int64, confirmed bool) error {
	m.calls++
	if m.setConfirmedFunc != nil {
		return m.setConfirmedFunc(ctx, id, confirmed)
	}
	return nil
}

type mockVoucherRepo struct {
	getByIDFunc          func(ctx context.Context, id int64) (*entity.Voucher, error)
	findUnfundedFunc     func(ctx context.Context) ([]*entity.Voucher, error)
	findHouseNumbersFunc func(ctx context.Context, voucherIDs []int64) (map[int64]int, error)
	setConfirmedFunc     func(ctx context.Context, id int64, confirmed bool) error
	calls                int
}

func (m *mockVoucherRepo) GetByID(ctx context.Context, id int64) (*entity.Voucher, error) {
	m.calls++
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockVoucherRepo) FindUnfunded(ctx context.Context) ([]*entity.Voucher, error) {
	m.calls++
	if m.findUnfundedFunc != nil {
		return m.findUnfundedFunc(ctx)
	}
	return nil, nil
}

func (m *mockVoucherRepo) FindHouseNumbers(ctx context.Context, voucherIDs []int64) (map[int64]int, error) {
	m.calls++
	if m.findHouseNumbersFunc != nil {
		return m.findHouseNumbersFunc(ctx, voucherIDs)
	}
	return map[int64]int{}, nil
}

func (m *mockVoucherRepo) SetConfirmed(ctx context.Context, id int64, confirmed bool) error {
	m.calls++
	if m.setConfirmedFunc != nil {
		return m.setConfirmedFunc(ctx, id, confirmed)
	}
	return nil
}

type mockStatusRepo struct {
	findUnresolvedFunc    func(ctx context.Context, transactionID int64) ([]*entity.TransactionStatus, error)
	confirmUnresolvedFunc func(ctx context.Context, transactionID, voucherID int64, houseNumber int, reason string, processedAt time.Time) (int64, error)
	calls                 int
}

func (m *mockStatusRepo) FindUnresolvedByTransaction(ctx context.Context, transactionID int64) ([]*entity.TransactionStatus, error) {
	m.calls++
	if m.findUnresolvedFunc != nil {
		return m.findUnresolvedFunc(ctx, transactionID)
	}
	return nil, nil
}

func (m *mockStatusRepo) ConfirmUnresolved(ctx context.Context, transactionID, voucherID int64, houseNumber int, reason string, processedAt time.Time) (int64, error) {
	m.calls++
	if m.confirmUnresolvedFunc != nil {
		return m.confirmUnresolvedFunc(ctx, transactionID, voucherID, houseNumber, reason, processedAt)
	}
	return 1, nil
}

type mockHouseRepo struct {
	getByNumberFunc func(ctx context.Context, numberHouse int) (*entity.House, error)
	createFunc      func(ctx context.Context, house *entity.House) error
	creates         int
}

func (m *mockHouseRepo) GetByNumber(ctx context.Context, numberHouse int) (*entity.House, error) {
	if m.getByNumberFunc != nil {
		return m.getByNumberFunc(ctx, numberHouse)
	}
	return &entity.House{ID: 10, NumberHouse: numberHouse}, nil
}

func (m *mockHouseRepo) Create(ctx context.Context, house *entity.House) error {
	m.creates++
	if m.createFunc != nil {
		return m.createFunc(ctx, house)
	}
	house.ID = 11
	return nil
}

type mockRecordRepo struct {
	createFunc func(ctx context.Context, record *entity.PaymentRecord) error
	creates    int
}

func (m *mockRecordRepo) Create(ctx context.Context, record *entity.PaymentRecord) error {
	m.creates++
	if m.createFunc != nil {
		return m.createFunc(ctx, record)
	}
	record.ID = 100
	return nil
}

type mockHouseRecordRepo struct {
	createFunc func(ctx context.Context, houseRecord *entity.HouseRecord) error
	creates    int
}

func (m *mockHouseRecordRepo) Create(ctx context.Context, houseRecord *entity.HouseRecord) error {
	m.creates++
	if m.createFunc != nil {
		return m.createFunc(ctx, houseRecord)
	}
	houseRecord.ID = 200
	return nil
}

type mockAuditRepo struct {
	createFunc func(ctx context.Context, approval *entity.ManualValidationApproval) error
	creates    int
	last       *entity.ManualValidationApproval
}

func (m *mockAuditRepo) Create(ctx context.Context, approval *entity.ManualValidationApproval) error {
	m.creates++
	m.last = approval
	if m.createFunc != nil {
		return m.createFunc(ctx, approval)
	}
	approval.ID = 300
	return nil
}

type mockPeriodRepo struct {
	findFunc   func(ctx context.Context, year, month int) (*entity.Period, error)
	ensureFunc func(ctx context.Context, year, month int) (*entity.Period, error)
}

func (m *mockPeriodRepo) FindByYearAndMonth(ctx context.Context, year, month int) (*entity.Period, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, year, month)
	}
	return &entity.Period{ID: 1, Year: year, Month: month}, nil
}

func (m *mockPeriodRepo) EnsureExists(ctx context.Context, year, month int) (*entity.Period, error) {
	if m.ensureFunc != nil {
		return m.ensureFunc(ctx, year, month)
	}
	return &entity.Period{ID: 1, Year: year, Month: month}, nil
}

type mockAllocator struct {
	executeFunc func(ctx context.Context, input port.AllocationInput) (*port.AllocationResult, error)
	executions  int
	lastInput   port.AllocationInput
}

func (m *mockAllocator) Execute(ctx context.Context, input port.AllocationInput) (*port.AllocationResult, error) {
	m.executions++
	m.lastInput = input
	if m.executeFunc != nil {
		return m.executeFunc(ctx, input)
	}
	return &port.AllocationResult{Distributed: input.AmountToDistribute}, nil
}

type mockChargeRepo struct {
	findOutstandingFunc func(ctx context.Context, houseID, periodID int64) ([]*entity.HouseCharge, error)
	applyPaymentFunc    func(ctx context.Context, chargeID int64, amount float64) error
	payments            map[int64]float64
}

func (m *mockChargeRepo) FindOutstanding(ctx context.Context, houseID, periodID int64) ([]*entity.HouseCharge, error) {
	if m.findOutstandingFunc != nil {
		return m.findOutstandingFunc(ctx, houseID, periodID)
	}
	return nil, nil
}

func (m *mockChargeRepo) ApplyPayment(ctx context.Context, chargeID int64, amount float64) error {
	if m.payments == nil {
		m.payments = make(map[int64]float64)
	}
	m.payments[chargeID] += amount
	if m.applyPaymentFunc != nil {
		return m.applyPaymentFunc(ctx, chargeID, amount)
	}
	return nil
}
