package service

import (
	"context"
	"errors"
	"testing"

	"github.com/condoops/bank-reconciliation/internal/application/port"
	"github.com/condoops/bank-reconciliation/internal/domain/entity"
)

func TestAllocationService_Execute(t *testing.T) {
	tests := []struct {
		name            string
		amount          float64
		charges         []*entity.HouseCharge
		wantDistributed float64
		wantRemaining   float64
		wantChargesPaid int
	}{
		{
			name:   "covers all charges with surplus",
			amount: 500,
			charges: []*entity.HouseCharge{
				{ID: 1, Amount: 200},
				{ID: 2, Amount: 150},
			},
			wantDistributed: 350,
			wantRemaining:   150,
			wantChargesPaid: 2,
		},
		{
			name:   "partial payment on last charge",
			amount: 250,
			charges: []*entity.HouseCharge{
				{ID: 1, Amount: 200},
				{ID: 2, Amount: 150},
			},
			wantDistributed: 250,
			wantRemaining:   0,
			wantChargesPaid: 1,
		},
		{
			name:            "no outstanding charges",
			amount:          100,
			charges:         nil,
			wantDistributed: 0,
			wantRemaining:   100,
			wantChargesPaid: 0,
		},
		{
			name:   "skips already-paid charges",
			amount: 100,
			charges: []*entity.HouseCharge{
				{ID: 1, Amount: 200, PaidAmount: 200},
				{ID: 2, Amount: 80},
			},
			wantDistributed: 80,
			wantRemaining:   20,
			wantChargesPaid: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chargeRepo := &mockChargeRepo{
				findOutstandingFunc: func(ctx context.Context, houseID, periodID int64) ([]*entity.HouseCharge, error) {
					return tt.charges, nil
				},
			}
			svc := NewAllocationService(chargeRepo, &mockLogger{})

			result, err := svc.Execute(context.Background(), port.AllocationInput{
				RecordID:           1,
				HouseID:            10,
				AmountToDistribute: tt.amount,
				PeriodID:           1,
			})
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if result.Distributed != tt.wantDistributed {
				t.Errorf("Distributed = %v, want %v", result.Distributed, tt.wantDistributed)
			}
			if result.Remaining != tt.wantRemaining {
				t.Errorf("Remaining = %v, want %v", result.Remaining, tt.wantRemaining)
			}
			if result.ChargesPaid != tt.wantChargesPaid {
				t.Errorf("ChargesPaid = %v, want %v", result.ChargesPaid, tt.wantChargesPaid)
			}
		})
	}
}

func TestAllocationService_PaymentErrorPropagates(t *testing.T) {
	wantErr := errors.New("constraint violation")
	chargeRepo := &mockChargeRepo{
		findOutstandingFunc: func(ctx context.Context, houseID, periodID int64) ([]*entity.HouseCharge, error) {
			return []*entity.HouseCharge{{ID: 1, Amount: 50}}, nil
		},
		applyPaymentFunc: func(ctx context.Context, chargeID int64, amount float64) error {
			return wantErr
		},
	}
	svc := NewAllocationService(chargeRepo, &mockLogger{})

	_, err := svc.Execute(context.Background(), port.AllocationInput{AmountToDistribute: 50})
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want wrapped payment error", err)
	}
}
