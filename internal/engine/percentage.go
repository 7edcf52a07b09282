package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dvfactor/dv-factor/internal/domain"
)

// MissingRowError reports a (month, bettors count) pair the payout table
// does not model. It is a configuration problem and must not be treated
// as a 0% entry: a real 0% row means "too late / too crowded to pay".
type MissingRowError struct {
	Month int
	Count int
}

func (e *MissingRowError) Error() string {
	return fmt.Sprintf("payout table has no row for month %d with %d bettors", e.Month, e.Count)
}

// Resolver answers payout percentage lookups against the static payout
// table. Selector counts above the highest modeled row for a month are
// clamped to that row.
type Resolver struct {
	rows     map[int]map[int]decimal.Decimal
	maxCount map[int]int
}

// NewResolver indexes the payout table rows. Rows with a bettors count
// below 1 are rejected: zero selectors can never receive a payout, so a
// (month, 0) row is a configuration error.
func NewResolver(rows []*domain.PayoutRow) (*Resolver, error) {
	r := &Resolver{
		rows:     make(map[int]map[int]decimal.Decimal),
		maxCount: make(map[int]int),
	}
	for _, row := range rows {
		if row.Month < 1 || row.Month > 12 {
			return nil, fmt.Errorf("payout table row has invalid month %d", row.Month)
		}
		if row.BettorsCount < 1 {
			return nil, fmt.Errorf("payout table row for month %d has invalid bettors count %d", row.Month, row.BettorsCount)
		}
		if r.rows[row.Month] == nil {
			r.rows[row.Month] = make(map[int]decimal.Decimal)
		}
		r.rows[row.Month][row.BettorsCount] = row.Percentage
		if row.BettorsCount > r.maxCount[row.Month] {
			r.maxCount[row.Month] = row.BettorsCount
		}
	}
	return r, nil
}

// Percentage returns the payout percentage in [0,100] for a resignation
// in the given month selected by selectorCount distinct bettors.
func (r *Resolver) Percentage(month, selectorCount int) (decimal.Decimal, error) {
	if selectorCount < 1 {
		return decimal.Zero, &MissingRowError{Month: month, Count: selectorCount}
	}
	byCount, ok := r.rows[month]
	if !ok {
		return decimal.Zero, &MissingRowError{Month: month, Count: selectorCount}
	}
	if max := r.maxCount[month]; selectorCount > max {
		selectorCount = max
	}
	pct, ok := byCount[selectorCount]
	if !ok {
		return decimal.Zero, &MissingRowError{Month: month, Count: selectorCount}
	}
	return pct, nil
}
