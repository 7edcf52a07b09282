// Package engine implements the payout computation for an edition:
// pool totals, payout percentage lookup, and the per-bettor prize
// distribution. Everything here is pure; callers fetch the snapshot
// from the repositories and persist the results.
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/dvfactor/dv-factor/internal/domain"
)

// ComputePool returns the authoritative total pool for an edition:
// the jackpot plus the sum of all confirmed payment amounts.
// Recomputation is idempotent, it derives only from the current ledger.
func ComputePool(jackpot decimal.Decimal, participants []*domain.Participant) decimal.Decimal {
	total := jackpot
	for _, p := range participants {
		if p.PaymentConfirmed {
			total = total.Add(p.PaymentAmount)
		}
	}
	return total.Round(2)
}
