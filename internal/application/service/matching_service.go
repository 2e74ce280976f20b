package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/condoops/bank-reconciliation/internal/application/port"
	"github.com/condoops/bank-reconciliation/internal/config"
	"github.com/condoops/bank-reconciliation/internal/domain/entity"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// MatchingService pairs unclaimed deposits with unfunded vouchers
type MatchingService interface {
	FindMatchSuggestions(ctx context.Context) (*entity.MatchSuggestionResult, error)
}

type matchingServiceImpl struct {
	depositRepo port.DepositRepository
	voucherRepo port.VoucherRepository
	cfg         config.ReconciliationConfig
	logger      Logger
}

// NewMatchingService creates a new MatchingService
func NewMatchingService(
	depositRepo port.DepositRepository,
	voucherRepo port.VoucherRepository,
	cfg config.ReconciliationConfig,
	logger Logger,
) MatchingService {
	return &matchingServiceImpl{
		depositRepo: depositRepo,
		voucherRepo: voucherRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

// candidateGroup holds the deposits and vouchers sharing one (day, amount) key.
type candidateGroup struct {
	deposits []*entity.BankDeposit
	vouchers []*entity.Voucher
}

// FindMatchSuggestions groups both candidate sets by (calendar day, exact
// amount), pairs elements within each joinable group by position after
// sorting, and classifies confidence. Read-only and idempotent; safe to
// call concurrently.
func (s *matchingServiceImpl) FindMatchSuggestions(ctx context.Context) (*entity.MatchSuggestionResult, error) {
	deposits, err := s.depositRepo.FindUnclaimed(ctx)
	if err != nil {
		return nil, fmt.Errorf("find unclaimed deposits: %w", err)
	}

	vouchers, err := s.voucherRepo.FindUnfunded(ctx)
	if err != nil {
		return nil, fmt.Errorf("find unfunded vouchers: %w", err)
	}

	result := &entity.MatchSuggestionResult{Suggestions: []*entity.MatchSuggestion{}}

	// Fast path: nothing to cross-match on either side.
	if len(deposits) == 0 || len(vouchers) == 0 {
		s.logger.Info("No cross-match candidates",
			"deposits", len(deposits), "vouchers", len(vouchers))
		return result, nil
	}

	voucherIDs := make([]int64, 0, len(vouchers))
	for _, v := range vouchers {
		voucherIDs = append(voucherIDs, v.ID)
	}

	houseNumbers, err := s.voucherRepo.FindHouseNumbers(ctx, voucherIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve voucher house numbers: %w", err)
	}

	groups := make(map[string]*candidateGroup)
	for _, d := range deposits {
		key := groupKey(d.Date.Format("2006-01-02"), d.Amount)
		g := groups[key]
		if g == nil {
			g = &candidateGroup{}
			groups[key] = g
		}
		g.deposits = append(g.deposits, d)
	}
	for _, v := range vouchers {
		key := groupKey(v.Date.Format("2006-01-02"), v.Amount)
		g := groups[key]
		if g == nil {
			g = &candidateGroup{}
			groups[key] = g
		}
		g.vouchers = append(g.vouchers, v)
	}

	// Stable output across calls with identical state.
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		g := groups[key]
		if len(g.deposits) == 0 || len(g.vouchers) == 0 {
			continue
		}
		s.pairGroup(g, houseNumbers, result)
	}

	result.TotalSuggestions = len(result.Suggestions)

	s.logger.Info("Cross-match pass completed",
		"total", result.TotalSuggestions,
		"high", result.HighConfidence,
		"medium", result.MediumConfidence)

	return result, nil
}

// pairGroup pairs a joinable group index-for-index. Greedy positional
// pairing after sorting, not a weighted bipartite optimum.
func (s *matchingServiceImpl) pairGroup(g *candidateGroup, houseNumbers map[int64]int, result *entity.MatchSuggestionResult) {
	// Missing time-of-day sorts first under plain string comparison.
	sort.SliceStable(g.deposits, func(i, j int) bool {
		return g.deposits[i].TimeOfDay < g.deposits[j].TimeOfDay
	})
	sort.SliceStable(g.vouchers, func(i, j int) bool {
		return g.vouchers[i].Date.Before(g.vouchers[j].Date)
	})

	sameCount := len(g.deposits) == len(g.vouchers)
	pairs := len(g.deposits)
	if len(g.vouchers) < pairs {
		pairs = len(g.vouchers)
	}

	for i := 0; i < pairs; i++ {
		deposit := g.deposits[i]
		voucher := g.vouchers[i]

		var houseNumber *int
		if hn, ok := houseNumbers[voucher.ID]; ok {
			n := hn
			houseNumber = &n
		}

		confidence := entity.SuggestionMedium
		if sameCount && houseNumber != nil && s.houseInRange(*houseNumber) {
			confidence = entity.SuggestionHigh
		}

		suggestion := &entity.MatchSuggestion{
			DepositID:   deposit.ID,
			VoucherID:   voucher.ID,
			Amount:      deposit.Amount,
			DepositDate: deposit.Date,
			DepositTime: deposit.TimeOfDay,
			VoucherDate: voucher.Date,
			HouseNumber: houseNumber,
			Confidence:  confidence,
			Reason:      s.buildReason(deposit, len(g.deposits), len(g.vouchers), sameCount, houseNumber),
		}

		result.Suggestions = append(result.Suggestions, suggestion)
		if confidence == entity.SuggestionHigh {
			result.HighConfidence++
		} else {
			result.MediumConfidence++
		}
	}
}

func (s *matchingServiceImpl) houseInRange(n int) bool {
	return n >= s.cfg.MinHouseNumber && n <= s.cfg.MaxHouseNumber
}

// buildReason produces the human-readable audit string for a suggestion.
// Free text for operators; nothing downstream parses it.
func (s *matchingServiceImpl) buildReason(deposit *entity.BankDeposit, depositCount, voucherCount int, sameCount bool, houseNumber *int) string {
	amountDate := fmt.Sprintf("Amount %.2f and date %s match", deposit.Amount, deposit.Date.Format("2006-01-02"))

	var counts string
	if sameCount {
		counts = fmt.Sprintf("%d deposit(s) = %d voucher(s)", depositCount, voucherCount)
	} else {
		counts = fmt.Sprintf("%d deposit(s) ~ %d voucher(s) (partial)", depositCount, voucherCount)
	}

	house := "house not identified"
	if houseNumber != nil {
		if s.houseInRange(*houseNumber) {
			house = fmt.Sprintf("house %d identified", *houseNumber)
		} else {
			house = fmt.Sprintf("house %d outside valid range", *houseNumber)
		}
	}

	return fmt.Sprintf("%s; %s; %s", amountDate, counts, house)
}

func groupKey(day string, amount float64) string {
	// Amounts are normalized upstream to at most 2 decimal places, so the
	// fixed-point key preserves exact equality.
	return fmt.Sprintf("%s|%.2f", day, amount)
}
