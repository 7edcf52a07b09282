package engine_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvfactor/dv-factor/internal/domain"
	"github.com/dvfactor/dv-factor/internal/engine"
)

func month3Resolver(t *testing.T) *engine.Resolver {
	t.Helper()
	resolver, err := engine.NewResolver([]*domain.PayoutRow{
		payoutRow(t, 3, 1, "50.00"),
		payoutRow(t, 3, 2, "40.00"),
		payoutRow(t, 3, 3, "30.00"),
	})
	require.NoError(t, err)
	return resolver
}

func awardFor(t *testing.T, dist *engine.Distribution, bettor uuid.UUID) engine.Award {
	t.Helper()
	for _, a := range dist.Awards {
		if a.BettorID == bettor {
			return a
		}
	}
	t.Fatalf("no award for bettor %s", bettor)
	return engine.Award{}
}

func TestDistribute_EvenSplit(t *testing.T) {
	// First resignation of the edition, month 3, 2 selectors, no bonus:
	// 40% x 70% x 80.00 = 22.40, split 11.20 each.
	resolver := month3Resolver(t)
	pool := dec(t, "80.00")
	employee := uuid.New()
	a, b := uuid.New(), uuid.New()

	dist, err := engine.Distribute(pool, resolver, employee, 3, 1, []engine.Selector{
		{BettorID: a}, {BettorID: b},
	})
	require.NoError(t, err)

	assert.True(t, dist.Attributable.Equal(dec(t, "22.40")), "attributable %s", dist.Attributable)
	require.Len(t, dist.Awards, 2)
	assert.True(t, awardFor(t, dist, a).Amount.Equal(dec(t, "11.20")))
	assert.True(t, awardFor(t, dist, b).Amount.Equal(dec(t, "11.20")))
	assert.True(t, dist.Forfeited.IsZero())
}

func TestDistribute_BonusSplit(t *testing.T) {
	// Same event but one of the two selectors activated the Chiringuito:
	// bonus side gets 60% of 22.40 = 13.44, the other 40% = 8.96.
	resolver := month3Resolver(t)
	pool := dec(t, "80.00")
	employee := uuid.New()
	bonus, plain := uuid.New(), uuid.New()

	dist, err := engine.Distribute(pool, resolver, employee, 3, 1, []engine.Selector{
		{BettorID: bonus, Bonus: true},
		{BettorID: plain},
	})
	require.NoError(t, err)

	assert.True(t, dist.Attributable.Equal(dec(t, "22.40")))
	assert.True(t, awardFor(t, dist, bonus).Amount.Equal(dec(t, "13.44")))
	assert.True(t, awardFor(t, dist, plain).Amount.Equal(dec(t, "8.96")))
	assert.True(t, awardFor(t, dist, bonus).Bonus)
	assert.False(t, awardFor(t, dist, plain).Bonus)
}

func TestDistribute_AllSelectorsActivatedBonus(t *testing.T) {
	// With no non-bonus selectors the 40% side has no recipients, so the
	// whole attributable amount splits among the bonus activators.
	resolver := month3Resolver(t)
	pool := dec(t, "80.00")
	a, b := uuid.New(), uuid.New()

	dist, err := engine.Distribute(pool, resolver, uuid.New(), 3, 1, []engine.Selector{
		{BettorID: a, Bonus: true},
		{BettorID: b, Bonus: true},
	})
	require.NoError(t, err)

	assert.True(t, awardFor(t, dist, a).Amount.Equal(dec(t, "11.20")))
	assert.True(t, awardFor(t, dist, b).Amount.Equal(dec(t, "11.20")))
	assert.True(t, dist.Distributed().Equal(dist.Attributable))
}

func TestDistribute_RankShares(t *testing.T) {
	resolver := month3Resolver(t)
	pool := dec(t, "80.00")
	bettor := uuid.New()

	tests := []struct {
		rank string
		n    int
		want string
	}{
		{"first resignation takes 70%", 1, "28.00"},  // 50% x 70% x 80.00
		{"second resignation takes 25%", 2, "10.00"}, // 50% x 25% x 80.00
		{"third resignation takes 5%", 3, "2.00"},    // 50% x 5% x 80.00
		{"fourth resignation takes nothing", 4, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.rank, func(t *testing.T) {
			dist, err := engine.Distribute(pool, resolver, uuid.New(), 3, tt.n, []engine.Selector{{BettorID: bettor}})
			require.NoError(t, err)
			assert.True(t, dist.Attributable.Equal(dec(t, tt.want)), "attributable %s, want %s", dist.Attributable, tt.want)
		})
	}
}

func TestDistribute_NoSelectors(t *testing.T) {
	// An employee nobody picked attributes nothing; the percentage table
	// is never consulted, so even a missing row is not an error here.
	resolver := month3Resolver(t)

	dist, err := engine.Distribute(dec(t, "80.00"), resolver, uuid.New(), 9, 1, nil)
	require.NoError(t, err)

	assert.True(t, dist.Attributable.IsZero())
	assert.Empty(t, dist.Awards)
}

func TestDistribute_MissingRowSurfaces(t *testing.T) {
	resolver := month3Resolver(t)

	_, err := engine.Distribute(dec(t, "80.00"), resolver, uuid.New(), 7, 1, []engine.Selector{{BettorID: uuid.New()}})
	require.Error(t, err)

	var missing *engine.MissingRowError
	assert.ErrorAs(t, err, &missing)
}

func TestDistribute_RoundingConservation(t *testing.T) {
	resolver := month3Resolver(t)
	pool := dec(t, "80.00")
	selectors := []engine.Selector{
		{BettorID: uuid.New()}, {BettorID: uuid.New()}, {BettorID: uuid.New()},
	}

	dist, err := engine.Distribute(pool, resolver, uuid.New(), 3, 1, selectors)
	require.NoError(t, err)

	total := decimal.Zero
	for _, a := range dist.Awards {
		total = total.Add(a.Amount)
	}
	assert.True(t, total.LessThanOrEqual(dist.Attributable))
	assert.True(t, dist.Attributable.Sub(total).LessThan(dec(t, "0.03")),
		"at most one truncated cent per selector may remain")

	// Determinism: same inputs, same awards.
	again, err := engine.Distribute(pool, resolver, uuid.New(), 3, 1, selectors)
	require.NoError(t, err)
	for i := range dist.Awards {
		assert.True(t, dist.Awards[i].Amount.Equal(again.Awards[i].Amount))
		assert.Equal(t, dist.Awards[i].BettorID, again.Awards[i].BettorID)
	}
}

func TestDistribute_LeftoverCentsGoToSmallestIDs(t *testing.T) {
	// 100.00 pool, 50% x 70% = 35.00 over 3 selectors: 11.66 each with
	// two cents left over for the two smallest bettor IDs.
	resolver, err := engine.NewResolver([]*domain.PayoutRow{
		payoutRow(t, 3, 3, "50.00"),
	})
	require.NoError(t, err)

	selectors := []engine.Selector{
		{BettorID: uuid.MustParse("cccccccc-0000-0000-0000-000000000000")},
		{BettorID: uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000000")},
		{BettorID: uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000000")},
	}

	dist, err := engine.Distribute(dec(t, "100.00"), resolver, uuid.New(), 3, 1, selectors)
	require.NoError(t, err)

	assert.True(t, dist.Attributable.Equal(dec(t, "35.00")))
	assert.True(t, awardFor(t, dist, selectors[1].BettorID).Amount.Equal(dec(t, "11.67")), "smallest ID gets an extra cent")
	assert.True(t, awardFor(t, dist, selectors[2].BettorID).Amount.Equal(dec(t, "11.67")))
	assert.True(t, awardFor(t, dist, selectors[0].BettorID).Amount.Equal(dec(t, "11.66")))
	assert.True(t, dist.Distributed().Equal(dec(t, "35.00")))
	assert.True(t, dist.Forfeited.IsZero())
}
