package analytics

import (
	"math"
	"sort"
	"time"
)

// CashFlow is a single signed money event: negative for money put in,
// positive for money taken out (or the terminal portfolio value).
type CashFlow struct {
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

const (
	defaultGuess         = 0.10
	defaultMaxIterations = 100
	defaultPrecision     = 0.0001

	daysPerYear = 365
)

// XIRROption tweaks the solver parameters.
type XIRROption func(*xirrConfig)

type xirrConfig struct {
	guess         float64
	maxIterations int
	precision     float64
}

// WithGuess sets the initial rate estimate (default 0.10, i.e. 10%).
func WithGuess(guess float64) XIRROption {
	return func(c *xirrConfig) { c.guess = guess }
}

// WithMaxIterations caps the Newton-Raphson loop (default 100).
func WithMaxIterations(n int) XIRROption {
	return func(c *xirrConfig) { c.maxIterations = n }
}

// WithPrecision sets the convergence threshold on the absolute change in
// rate between iterations (default 0.0001).
func WithPrecision(p float64) XIRROption {
	return func(c *xirrConfig) { c.precision = p }
}

// ComputeXIRR finds the annualized discount rate that zeroes the net present
// value of the cash-flow series, using Newton-Raphson iteration, and returns
// it as a percentage. Years are measured from the earliest event's date at
// 365 days per year.
//
// Fewer than two events cannot define a rate, so the result is 0. If the
// loop runs out of iterations the last iterate is returned as-is rather
// than flagged as an error. As a hardening beyond that permissive contract,
// a vanishing derivative or a non-finite iterate returns 0 instead of
// propagating garbage.
func ComputeXIRR(cashflows []CashFlow, opts ...XIRROption) float64 {
	if len(cashflows) < 2 {
		return 0
	}

	cfg := xirrConfig{
		guess:         defaultGuess,
		maxIterations: defaultMaxIterations,
		precision:     defaultPrecision,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	start := cashflows[0].Date
	for _, cf := range cashflows[1:] {
		if cf.Date.Before(start) {
			start = cf.Date
		}
	}

	rate := cfg.guess
	for i := 0; i < cfg.maxIterations; i++ {
		var f, df float64
		for _, cf := range cashflows {
			years := cf.Date.Sub(start).Hours() / 24 / daysPerYear
			f += cf.Amount / math.Pow(1+rate, years)
			df -= years * cf.Amount / math.Pow(1+rate, years+1)
		}

		if df == 0 {
			return 0
		}
		next := rate - f/df
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return 0
		}
		if math.Abs(next-rate) < cfg.precision {
			return next * 100
		}
		rate = next
	}

	return rate * 100
}

// TerminalValueConvention selects how BuildCashFlows sums the terminal
// inflow event.
type TerminalValueConvention int

const (
	// GrossValue sums the current value of every asset, liabilities
	// included with positive sign. This reproduces the historical
	// behavior of the calculation this engine replaces, even though it
	// disagrees with the net-worth sign convention used by
	// ComputeMetrics.
	GrossValue TerminalValueConvention = iota
	// NetOfLiabilities subtracts liability value from the terminal
	// inflow, matching ComputeMetrics' treatment of net worth.
	NetOfLiabilities
)

// BuildCashFlows derives the XIRR input series from an asset snapshot: one
// outflow per asset at its purchase date for the amount paid, plus a single
// terminal inflow at now for the portfolio's current value, sorted by date.
// The terminal sum follows the given convention; GrossValue is what the
// analytics endpoints use.
func BuildCashFlows(assets []Asset, now time.Time, convention TerminalValueConvention) []CashFlow {
	if len(assets) == 0 {
		return nil
	}

	cashflows := make([]CashFlow, 0, len(assets)+1)
	var terminal float64

	for _, a := range assets {
		cashflows = append(cashflows, CashFlow{
			Amount: -a.CostBasis(),
			Date:   a.PurchaseDate,
		})
		if convention == NetOfLiabilities && a.Liability() {
			terminal -= a.CurrentValue()
		} else {
			terminal += a.CurrentValue()
		}
	}

	cashflows = append(cashflows, CashFlow{Amount: terminal, Date: now})

	sort.SliceStable(cashflows, func(i, j int) bool {
		return cashflows[i].Date.Before(cashflows[j].Date)
	})
	return cashflows
}
