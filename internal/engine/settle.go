package engine

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dvfactor/dv-factor/internal/domain"
)

// Result is the full settlement of one edition: one distribution per
// resignation, in rank order, plus the totals.
type Result struct {
	TotalPool     decimal.Decimal `json:"totalPool"`
	Distributions []*Distribution `json:"distributions"`
	Distributed   decimal.Decimal `json:"distributed"`
	Forfeited     decimal.Decimal `json:"forfeited"`
}

// Settle runs the distribution for every resigned employee of an
// edition. Ranks follow resignation date order, ties broken by employee
// ID so the result is deterministic for a fixed snapshot. Bets are one
// per user, so each bet selecting an employee counts as one distinct
// selector.
func Settle(pool decimal.Decimal, resolver *Resolver, resigned []*domain.Employee, bets []*domain.Bet) (*Result, error) {
	ordered := make([]*domain.Employee, len(resigned))
	copy(ordered, resigned)
	for _, emp := range ordered {
		if emp.ResignationDate == nil || emp.ResignationMonth == nil {
			return nil, fmt.Errorf("employee %s has no recorded resignation", emp.ID)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		di, dj := *ordered[i].ResignationDate, *ordered[j].ResignationDate
		if di.Equal(dj) {
			return ordered[i].ID.String() < ordered[j].ID.String()
		}
		return di.Before(dj)
	})

	result := &Result{
		TotalPool:   pool,
		Distributed: decimal.Zero,
		Forfeited:   decimal.Zero,
	}

	for i, emp := range ordered {
		var selectors []Selector
		for _, bet := range bets {
			if !bet.Selected(emp.ID) {
				continue
			}
			selectors = append(selectors, Selector{
				BettorID: bet.UserID,
				Bonus:    bet.BonusOn(emp.ID),
			})
		}

		dist, err := Distribute(pool, resolver, emp.ID, *emp.ResignationMonth, i+1, selectors)
		if err != nil {
			return nil, fmt.Errorf("settling resignation of employee %s: %w", emp.ID, err)
		}

		result.Distributions = append(result.Distributions, dist)
		result.Distributed = result.Distributed.Add(dist.Distributed())
		result.Forfeited = result.Forfeited.Add(dist.Forfeited)
	}

	return result, nil
}
