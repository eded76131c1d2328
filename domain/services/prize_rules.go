package services

import (
	"fmt"

	"lottosim/config"
	"lottosim/domain/entities"
	"lottosim/domain/rng"
)

// Lotto 6/45 fixed tier prizes.
const (
	lottoPrizeRank1 int64 = 2_000_000_000
	lottoPrizeRank2 int64 = 30_000_000
	lottoPrizeRank3 int64 = 1_500_000
	lottoPrizeRank4 int64 = 50_000
	lottoPrizeRank5 int64 = 5_000
)

// Real-world lotto drawing odds, used only by the probability-weighted
// policy.
const (
	lottoOddsRank1 = 1.0 / 8_145_060
	lottoOddsRank2 = 1.0 / 1_357_510
	lottoOddsRank3 = 1.0 / 35_724
	lottoOddsRank4 = 1.0 / 733
	lottoOddsRank5 = 1.0 / 45
)

// Scratch prize tiers, checked rarest first. A matched ticket that falls
// through every threshold still wins the guaranteed minimum.
const (
	scratchPrizeRank1   int64 = 500_000_000
	scratchPrizeRank2   int64 = 20_000_000
	scratchPrizeRank3   int64 = 10_000
	scratchPrizeRank4   int64 = 5_000
	scratchPrizeMinimum int64 = 1_000

	scratchThresholdRank1 = 0.0000002
	scratchThresholdRank2 = 0.000001
	scratchThresholdRank3 = 0.0055
	scratchThresholdRank4 = 0.025
)

// Pension 720+ prizes. Ranks 1 and 2 are monthly annuities paid over 20
// and 10 years; the rest are lump sums.
const (
	pensionMonthlyRank1 int64 = 7_000_000
	pensionMonthlyRank2 int64 = 1_000_000
	pensionYearsRank1         = 20
	pensionYearsRank2         = 10

	pensionLumpRank3 int64 = 10_000_000
	pensionLumpRank4 int64 = 5_000_000
	pensionLumpRank5 int64 = 1_000_000
	pensionLumpRank6 int64 = 100_000
	pensionLumpRank7 int64 = 10_000
)

// PrizeRules maps generated numbers and drawn numbers to a rank and prize
// for each game. Scoring is deterministic given the inputs, except where a
// game's rules call for a tier draw (scratch tiers, and every lotto tier
// under the probability-weighted policy); those draws come from the
// injected random source.
type PrizeRules struct {
	random rng.Source
	policy config.PrizePolicy
}

// NewPrizeRules creates prize rules backed by the given random source and
// payout policy.
func NewPrizeRules(random rng.Source, policy config.PrizePolicy) *PrizeRules {
	return &PrizeRules{
		random: random,
		policy: policy,
	}
}

// CheckLotto scores a player selection against drawn numbers. The bonus
// number counts when it appears in the drawn main set; it only
// distinguishes rank 2 from rank 3.
func (p *PrizeRules) CheckLotto(player, winning entities.LottoNumbers) (entities.LottoResult, error) {
	var matching []int
	for _, n := range player.Main {
		if winning.Contains(n) {
			matching = append(matching, n)
		}
	}
	mainMatches := len(matching)
	bonusMatch := winning.Contains(player.Bonus)

	result := entities.LottoResult{
		WinningNumbers:  winning,
		MatchingNumbers: matching,
	}

	var rank int
	switch {
	case mainMatches == 6:
		rank = 1
	case mainMatches == 5 && bonusMatch:
		rank = 2
	case mainMatches == 5:
		rank = 3
	case mainMatches == 4:
		rank = 4
	case mainMatches == 3:
		rank = 5
	default:
		return result, nil
	}

	if p.policy == config.PrizePolicyWeighted {
		return p.applyWeightedLottoPayout(result, rank)
	}

	result.Rank = rank
	result.Prize = fixedLottoPrize(rank)
	return result, nil
}

func fixedLottoPrize(rank int) int64 {
	switch rank {
	case 1:
		return lottoPrizeRank1
	case 2:
		return lottoPrizeRank2
	case 3:
		return lottoPrizeRank3
	case 4:
		return lottoPrizeRank4
	case 5:
		return lottoPrizeRank5
	}
	return 0
}

// applyWeightedLottoPayout gates the matched tier behind its real-world
// drawing odds and randomizes the top-tier amounts within their historical
// ranges.
func (p *PrizeRules) applyWeightedLottoPayout(result entities.LottoResult, rank int) (entities.LottoResult, error) {
	roll, err := p.random.Float64()
	if err != nil {
		return entities.LottoResult{}, fmt.Errorf("failed to draw payout gate: %w", err)
	}

	var odds float64
	switch rank {
	case 1:
		odds = lottoOddsRank1
	case 2:
		odds = lottoOddsRank2
	case 3:
		odds = lottoOddsRank3
	case 4:
		odds = lottoOddsRank4
	case 5:
		odds = lottoOddsRank5
	}
	if roll >= odds {
		return result, nil
	}

	result.Rank = rank
	switch rank {
	case 1:
		spread, err := p.random.Int(0, 500_000_000-1)
		if err != nil {
			return entities.LottoResult{}, fmt.Errorf("failed to draw prize spread: %w", err)
		}
		result.Prize = lottoPrizeRank1 + int64(spread)
	case 2:
		spread, err := p.random.Int(0, 40_000_000-1)
		if err != nil {
			return entities.LottoResult{}, fmt.Errorf("failed to draw prize spread: %w", err)
		}
		result.Prize = 40_000_000 + int64(spread)
	case 3:
		spread, err := p.random.Int(0, 500_000-1)
		if err != nil {
			return entities.LottoResult{}, fmt.Errorf("failed to draw prize spread: %w", err)
		}
		result.Prize = lottoPrizeRank3 + int64(spread)
	default:
		result.Prize = fixedLottoPrize(rank)
	}
	return result, nil
}

// CheckScratch scores a scratch ticket. Any user number equal to the lucky
// number wins at least the minimum prize; the exact tier is drawn from the
// threshold table, rarest first.
func (p *PrizeRules) CheckScratch(userNumbers, luckyNumbers []int) (entities.ScratchResult, error) {
	result := entities.ScratchResult{MatchingNumbers: []int{}}
	if len(luckyNumbers) == 0 {
		return result, nil
	}

	lucky := luckyNumbers[0]
	for _, n := range userNumbers {
		if n == lucky {
			result.MatchingNumbers = append(result.MatchingNumbers, n)
		}
	}
	if len(result.MatchingNumbers) == 0 {
		return result, nil
	}

	roll, err := p.random.Float64()
	if err != nil {
		return entities.ScratchResult{}, fmt.Errorf("failed to draw scratch tier: %w", err)
	}

	switch {
	case roll < scratchThresholdRank1:
		result.Prize = scratchPrizeRank1
	case roll < scratchThresholdRank2:
		result.Prize = scratchPrizeRank2
	case roll < scratchThresholdRank3:
		result.Prize = scratchPrizeRank3
	case roll < scratchThresholdRank4:
		result.Prize = scratchPrizeRank4
	default:
		result.Prize = scratchPrizeMinimum
	}
	return result, nil
}

// CheckPension scores a pension ticket with the trailing contiguous match
// rule: digits are compared from the last position backward and counting
// stops at the first mismatch. Comparison is lexical per digit, so leading
// zeros are significant.
func (p *PrizeRules) CheckPension(player, winning entities.PensionNumbers) (entities.PensionResult, error) {
	matchCount := 0
	for i := 0; i < entities.PensionDigits; i++ {
		pos := entities.PensionDigits - 1 - i
		if pos >= len(player.Number) || pos >= len(winning.Number) {
			break
		}
		if player.Number[pos] != winning.Number[pos] {
			break
		}
		matchCount++
	}

	result := entities.PensionResult{WinningNumbers: winning}
	switch matchCount {
	case 6:
		result.Rank = 1
		result.MonthlyPrize = pensionMonthlyRank1
		result.TotalPrize = pensionMonthlyRank1 * 12 * pensionYearsRank1
	case 5:
		result.Rank = 2
		result.MonthlyPrize = pensionMonthlyRank2
		result.TotalPrize = pensionMonthlyRank2 * 12 * pensionYearsRank2
	case 4:
		result.Rank = 3
		result.TotalPrize = pensionLumpRank3
	case 3:
		result.Rank = 4
		result.TotalPrize = pensionLumpRank4
	case 2:
		result.Rank = 5
		result.TotalPrize = pensionLumpRank5
	case 1:
		result.Rank = 6
		result.TotalPrize = pensionLumpRank6
	case 0:
		if player.Group == winning.Group {
			result.Rank = 7
			result.TotalPrize = pensionLumpRank7
		}
	}
	return result, nil
}
