package analytics

import "math"

// Allocation holds the current value and share of one asset category.
type Allocation struct {
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// Metrics is the aggregate view of a portfolio, recomputed fresh on every
// call. There is no persisted identity: the struct is a plain value object.
type Metrics struct {
	TotalValue           float64                 `json:"total_value"`
	TotalInvested        float64                 `json:"total_invested"`
	TotalGain            float64                 `json:"total_gain"`
	TotalGainPercentage  float64                 `json:"total_gain_percentage"`
	DiversificationScore float64                 `json:"diversification_score"`
	AllocationByType     map[Category]Allocation `json:"allocation_by_type"`
	Liabilities          float64                 `json:"liabilities"`
	NetWorth             float64                 `json:"net_worth"`
	TotalPassiveIncome   float64                 `json:"total_passive_income"`
	AverageYield         float64                 `json:"average_yield"`
}

// ComputeMetrics reduces an asset snapshot into portfolio-level figures.
// An empty slice yields an all-zero Metrics value; every division below is
// guarded so the result never contains NaN or Inf. The function never fails:
// malformed input (negative quantities, zero prices) flows through the
// arithmetic unchecked.
func ComputeMetrics(assets []Asset) Metrics {
	m := Metrics{
		AllocationByType: make(map[Category]Allocation),
	}

	for _, a := range assets {
		if a.Liability() {
			m.Liabilities += a.CurrentValue()
			m.TotalInvested -= a.CostBasis()
			continue
		}
		m.TotalValue += a.CurrentValue()
		m.TotalInvested += a.CostBasis()
		m.TotalPassiveIncome += a.AnnualIncome()

		alloc := m.AllocationByType[a.Category]
		alloc.Value += a.CurrentValue()
		m.AllocationByType[a.Category] = alloc
	}

	m.NetWorth = m.TotalValue - m.Liabilities
	m.TotalGain = m.NetWorth - m.TotalInvested
	if m.TotalInvested != 0 {
		// Divide by the absolute value so a leveraged portfolio with
		// negative invested capital does not flip the sign of the gain.
		m.TotalGainPercentage = m.TotalGain / math.Abs(m.TotalInvested) * 100
	}

	if m.TotalValue > 0 {
		for cat, alloc := range m.AllocationByType {
			alloc.Percent = alloc.Value / m.TotalValue * 100
			m.AllocationByType[cat] = alloc
		}
		m.AverageYield = m.TotalPassiveIncome / m.TotalValue * 100
	}

	m.DiversificationScore = DiversificationScore(assets)

	return m
}

// DiversificationScore rates how spread out the holdings are, from 0 (all
// value in one category) to 100. It is the Herfindahl-Hirschman Index of
// the category allocation percentages, rescaled: HHI ranges 0-10000, and
// the score is 100 - HHI/100. Liabilities are excluded. Since percentages
// sum to 100 the HHI cannot exceed 10000 mathematically, but the result is
// clamped anyway to absorb floating-point drift.
func DiversificationScore(assets []Asset) float64 {
	var total float64
	byCategory := make(map[Category]float64)
	for _, a := range assets {
		if a.Liability() {
			continue
		}
		total += a.CurrentValue()
		byCategory[a.Category] += a.CurrentValue()
	}

	if total == 0 {
		return 0
	}

	var hhi float64
	for _, value := range byCategory {
		pct := value / total * 100
		hhi += pct * pct
	}

	return clamp(100-hhi/100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
