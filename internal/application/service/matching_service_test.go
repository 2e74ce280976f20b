package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/condoops/bank-reconciliation/internal/config"
	"github.com/condoops/bank-reconciliation/internal/domain/entity"
)

func testReconciliationConfig() config.ReconciliationConfig {
	return config.ReconciliationConfig{
		MinHouseNumber: 1,
		MaxHouseNumber: 60,
		SystemUserID:   1,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newMatchingService(deposits []*entity.BankDeposit, vouchers []*entity.Voucher, houses map[int64]int) MatchingService {
	depositRepo := &mockDepositRepo{
		findUnclaimedFunc: func(ctx context.Context) ([]*entity.BankDeposit, error) {
			return deposits, nil
		},
	}
	voucherRepo := &mockVoucherRepo{
		findUnfundedFunc: func(ctx context.Context) ([]*entity.Voucher, error) {
			return vouchers, nil
		},
		findHouseNumbersFunc: func(ctx context.Context, voucherIDs []int64) (map[int64]int, error) {
			return houses, nil
		},
	}
	return NewMatchingService(depositRepo, voucherRepo, testReconciliationConfig(), &mockLogger{})
}

func TestFindMatchSuggestions_EmptySets(t *testing.T) {
	tests := []struct {
		name     string
		deposits []*entity.BankDeposit
		vouchers []*entity.Voucher
	}{
		{"no deposits", nil, []*entity.Voucher{{ID: 1, Amount: 100, Date: day(2025, 1, 10)}}},
		{"no vouchers", []*entity.BankDeposit{{ID: 1, Amount: 100, Date: day(2025, 1, 10)}}, nil},
		{"both empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMatchingService(tt.deposits, tt.vouchers, nil)

			result, err := svc.FindMatchSuggestions(context.Background())
			if err != nil {
				t.Fatalf("FindMatchSuggestions() error = %v", err)
			}

			if result.TotalSuggestions != 0 || len(result.Suggestions) != 0 {
				t.Errorf("expected empty result, got %d suggestions", result.TotalSuggestions)
			}
			if result.HighConfidence != 0 || result.MediumConfidence != 0 {
				t.Errorf("expected zero counts, got high=%d medium=%d", result.HighConfidence, result.MediumConfidence)
			}
		})
	}
}

func TestFindMatchSuggestions_PairsWithinSharedKeyOnly(t *testing.T) {
	deposits := []*entity.BankDeposit{
		{ID: 1, Amount: 500.15, Date: day(2025, 1, 10), TimeOfDay: "10:00", IsDeposit: true},
		{ID: 2, Amount: 300.00, Date: day(2025, 1, 11), TimeOfDay: "09:00", IsDeposit: true},
	}
	vouchers := []*entity.Voucher{
		{ID: 21, Amount: 500.15, Date: day(2025, 1, 10)},
		// Same amount, different day: no shared key, no pairing.
		{ID: 22, Amount: 300.00, Date: day(2025, 1, 12)},
	}

	svc := newMatchingService(deposits, vouchers, map[int64]int{21: 15})

	result, err := svc.FindMatchSuggestions(context.Background())
	if err != nil {
		t.Fatalf("FindMatchSuggestions() error = %v", err)
	}

	if result.TotalSuggestions != 1 {
		t.Fatalf("expected 1 suggestion, got %d", result.TotalSuggestions)
	}

	sug := result.Suggestions[0]
	if sug.DepositID != 1 || sug.VoucherID != 21 {
		t.Errorf("paired wrong candidates: deposit %d voucher %d", sug.DepositID, sug.VoucherID)
	}
	if sug.Confidence != entity.SuggestionHigh {
		t.Errorf("expected high confidence, got %s", sug.Confidence)
	}
	if sug.HouseNumber == nil || *sug.HouseNumber != 15 {
		t.Errorf("expected house 15, got %v", sug.HouseNumber)
	}
}

func TestFindMatchSuggestions_CountInvariant(t *testing.T) {
	deposits := []*entity.BankDeposit{
		{ID: 1, Amount: 100, Date: day(2025, 2, 1), TimeOfDay: "08:00"},
		{ID: 2, Amount: 100, Date: day(2025, 2, 1), TimeOfDay: "09:00"},
		{ID: 3, Amount: 250.5, Date: day(2025, 2, 2), TimeOfDay: "10:00"},
		{ID: 4, Amount: 75, Date: day(2025, 2, 3)},
	}
	vouchers := []*entity.Voucher{
		{ID: 31, Amount: 100, Date: day(2025, 2, 1)},
		{ID: 32, Amount: 100, Date: day(2025, 2, 1)},
		{ID: 33, Amount: 250.5, Date: day(2025, 2, 2)},
		{ID: 34, Amount: 999, Date: day(2025, 2, 3)},
	}

	svc := newMatchingService(deposits, vouchers, map[int64]int{31: 5, 32: 6, 33: 200})

	result, err := svc.FindMatchSuggestions(context.Background())
	if err != nil {
		t.Fatalf("FindMatchSuggestions() error = %v", err)
	}

	if result.HighConfidence+result.MediumConfidence != result.TotalSuggestions {
		t.Errorf("high %d + medium %d != total %d",
			result.HighConfidence, result.MediumConfidence, result.TotalSuggestions)
	}
	if result.TotalSuggestions != 3 {
		t.Errorf("expected 3 suggestions, got %d", result.TotalSuggestions)
	}
}

func TestFindMatchSuggestions_ConfidenceClassification(t *testing.T) {
	tests := []struct {
		name     string
		deposits []*entity.BankDeposit
		vouchers []*entity.Voucher
		houses   map[int64]int
		want     string
	}{
		{
			name: "equal counts and house in range",
			deposits: []*entity.BankDeposit{
				{ID: 1, Amount: 400.07, Date: day(2025, 3, 1), TimeOfDay: "10:00"},
			},
			vouchers: []*entity.Voucher{{ID: 41, Amount: 400.07, Date: day(2025, 3, 1)}},
			houses:   map[int64]int{41: 7},
			want:     entity.SuggestionHigh,
		},
		{
			name: "house missing forces medium",
			deposits: []*entity.BankDeposit{
				{ID: 1, Amount: 400.07, Date: day(2025, 3, 1), TimeOfDay: "10:00"},
			},
			vouchers: []*entity.Voucher{{ID: 41, Amount: 400.07, Date: day(2025, 3, 1)}},
			houses:   map[int64]int{},
			want:     entity.SuggestionMedium,
		},
		{
			name: "house out of range forces medium",
			deposits: []*entity.BankDeposit{
				{ID: 1, Amount: 400.99, Date: day(2025, 3, 1), TimeOfDay: "10:00"},
			},
			vouchers: []*entity.Voucher{{ID: 41, Amount: 400.99, Date: day(2025, 3, 1)}},
			houses:   map[int64]int{41: 99},
			want:     entity.SuggestionMedium,
		},
		{
			name: "unequal counts force medium even with house",
			deposits: []*entity.BankDeposit{
				{ID: 1, Amount: 400.07, Date: day(2025, 3, 1), TimeOfDay: "10:00"},
				{ID: 2, Amount: 400.07, Date: day(2025, 3, 1), TimeOfDay: "11:00"},
			},
			vouchers: []*entity.Voucher{{ID: 41, Amount: 400.07, Date: day(2025, 3, 1)}},
			houses:   map[int64]int{41: 7},
			want:     entity.SuggestionMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMatchingService(tt.deposits, tt.vouchers, tt.houses)

			result, err := svc.FindMatchSuggestions(context.Background())
			if err != nil {
				t.Fatalf("FindMatchSuggestions() error = %v", err)
			}
			if len(result.Suggestions) == 0 {
				t.Fatal("expected at least one suggestion")
			}
			if got := result.Suggestions[0].Confidence; got != tt.want {
				t.Errorf("confidence = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFindMatchSuggestions_PositionalPairingByTime(t *testing.T) {
	// Two deposits, two vouchers, one shared key. Earliest deposit time
	// pairs with earliest voucher date.
	deposits := []*entity.BankDeposit{
		{ID: 2, Amount: 150, Date: day(2025, 4, 5), TimeOfDay: "16:30"},
		{ID: 1, Amount: 150, Date: day(2025, 4, 5), TimeOfDay: "08:15"},
		{ID: 3, Amount: 150, Date: day(2025, 4, 5)}, // missing time sorts first
	}
	vouchers := []*entity.Voucher{
		{ID: 52, Amount: 150, Date: day(2025, 4, 5).Add(14 * time.Hour)},
		{ID: 51, Amount: 150, Date: day(2025, 4, 5).Add(7 * time.Hour)},
		{ID: 53, Amount: 150, Date: day(2025, 4, 5).Add(20 * time.Hour)},
	}

	svc := newMatchingService(deposits, vouchers, nil)

	result, err := svc.FindMatchSuggestions(context.Background())
	if err != nil {
		t.Fatalf("FindMatchSuggestions() error = %v", err)
	}

	if result.TotalSuggestions != 3 {
		t.Fatalf("expected 3 suggestions, got %d", result.TotalSuggestions)
	}

	wantPairs := map[int64]int64{3: 51, 1: 52, 2: 53}
	for _, sug := range result.Suggestions {
		if wantPairs[sug.DepositID] != sug.VoucherID {
			t.Errorf("deposit %d paired with voucher %d, want %d",
				sug.DepositID, sug.VoucherID, wantPairs[sug.DepositID])
		}
	}
}

func TestFindMatchSuggestions_PartialGroupReason(t *testing.T) {
	deposits := []*entity.BankDeposit{
		{ID: 1, Amount: 200, Date: day(2025, 5, 1), TimeOfDay: "09:00"},
		{ID: 2, Amount: 200, Date: day(2025, 5, 1), TimeOfDay: "10:00"},
	}
	vouchers := []*entity.Voucher{
		{ID: 61, Amount: 200, Date: day(2025, 5, 1)},
		{ID: 62, Amount: 200, Date: day(2025, 5, 1)},
		{ID: 63, Amount: 200, Date: day(2025, 5, 1)},
	}

	svc := newMatchingService(deposits, vouchers, nil)

	result, err := svc.FindMatchSuggestions(context.Background())
	if err != nil {
		t.Fatalf("FindMatchSuggestions() error = %v", err)
	}

	// Pairs up to min(2, 3).
	if result.TotalSuggestions != 2 {
		t.Fatalf("expected 2 suggestions, got %d", result.TotalSuggestions)
	}
	for _, sug := range result.Suggestions {
		if sug.Confidence != entity.SuggestionMedium {
			t.Errorf("partial group must be medium, got %s", sug.Confidence)
		}
		if want := "2 deposit(s) ~ 3 voucher(s) (partial)"; !strings.Contains(sug.Reason, want) {
			t.Errorf("reason %q missing %q", sug.Reason, want)
		}
	}
}

func TestFindMatchSuggestions_RepositoryErrorPropagates(t *testing.T) {
	wantErr := errors.New("query timeout")
	depositRepo := &mockDepositRepo{
		findUnclaimedFunc: func(ctx context.Context) ([]*entity.BankDeposit, error) {
			return nil, wantErr
		},
	}
	svc := NewMatchingService(depositRepo, &mockVoucherRepo{}, testReconciliationConfig(), &mockLogger{})

	_, err := svc.FindMatchSuggestions(context.Background())
	if !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped repository error, got %v", err)
	}
}
