package engine

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rank shares: the first resignation of an edition carries 70% of its
// payout-eligible amount, the second 25%, the third 5%. Later
// resignations carry nothing.
var rankShares = []decimal.Decimal{
	decimal.NewFromInt(70),
	decimal.NewFromInt(25),
	decimal.NewFromInt(5),
}

// Chiringuito split: bettors who activated the bonus on the resigned
// employee share 60% of the attributable amount, the rest share 40%.
var (
	bonusShare    = decimal.NewFromInt(60)
	nonBonusShare = decimal.NewFromInt(40)
)

var hundred = decimal.NewFromInt(100)

// RankShare returns the percentage of the payout-eligible amount for
// the rank-th resignation (1-based). Zero beyond the third.
func RankShare(rank int) decimal.Decimal {
	if rank < 1 || rank > len(rankShares) {
		return decimal.Zero
	}
	return rankShares[rank-1]
}

// Selector is one bettor who picked the resigned employee, with the
// bonus flag set if their Chiringuito was on that employee.
type Selector struct {
	BettorID uuid.UUID
	Bonus    bool
}

// Award is one bettor's slice of a single resignation's payout.
type Award struct {
	BettorID uuid.UUID       `json:"bettorId"`
	Amount   decimal.Decimal `json:"amount"`
	Bonus    bool            `json:"bonus"`
}

// Distribution is the outcome of one resignation event.
type Distribution struct {
	EmployeeID   uuid.UUID       `json:"employeeId"`
	Rank         int             `json:"rank"`
	Month        int             `json:"month"`
	Percentage   decimal.Decimal `json:"percentage"`
	Attributable decimal.Decimal `json:"attributable"`
	Awards       []Award         `json:"awards"`
	Forfeited    decimal.Decimal `json:"forfeited"`
}

// Distributed returns the sum of all awarded amounts.
func (d *Distribution) Distributed() decimal.Decimal {
	total := decimal.Zero
	for _, a := range d.Awards {
		total = total.Add(a.Amount)
	}
	return total
}

// Distribute computes the per-bettor amounts for a single resignation.
//
// The attributable amount is pool x percentage x rank share. If any
// selector activated the bonus, bonus selectors split 60% and the
// others split 40%; a side with no recipients folds into the other, so
// the full attributable amount is paid whenever there is at least one
// selector. With no selectors at all nothing is attributable and the
// resignation still consumes its rank.
//
// Splits are truncated to whole cents; leftover cents go one each to
// the bettors with the smallest IDs (an even split leaves identical
// remainders, so the ID order is the documented tie-break). The
// distributed total therefore never exceeds the attributable amount.
func Distribute(pool decimal.Decimal, resolver *Resolver, employeeID uuid.UUID, month, rank int, selectors []Selector) (*Distribution, error) {
	dist := &Distribution{
		EmployeeID: employeeID,
		Rank:       rank,
		Month:      month,
		Percentage: decimal.Zero,
		Forfeited:  decimal.Zero,
	}

	if len(selectors) == 0 {
		dist.Attributable = decimal.Zero
		return dist, nil
	}

	pct, err := resolver.Percentage(month, len(selectors))
	if err != nil {
		return nil, err
	}
	dist.Percentage = pct

	share := RankShare(rank)
	attributable := pool.Mul(pct).Div(hundred).Mul(share).Div(hundred)
	dist.Attributable = attributable.Round(2)

	if attributable.IsZero() {
		return dist, nil
	}

	var bonus, plain []Selector
	for _, s := range selectors {
		if s.Bonus {
			bonus = append(bonus, s)
		} else {
			plain = append(plain, s)
		}
	}

	switch {
	case len(bonus) == 0:
		dist.Awards = splitEven(attributable, plain)
	case len(plain) == 0:
		dist.Awards = splitEven(attributable, bonus)
	default:
		bonusAmt := attributable.Mul(bonusShare).Div(hundred)
		plainAmt := attributable.Mul(nonBonusShare).Div(hundred)
		dist.Awards = append(splitEven(bonusAmt, bonus), splitEven(plainAmt, plain)...)
	}

	dist.Forfeited = dist.Attributable.Sub(dist.Distributed())
	return dist, nil
}

// splitEven divides amount evenly among the selectors, truncating each
// share to cents and handing leftover cents to the smallest bettor IDs.
func splitEven(amount decimal.Decimal, selectors []Selector) []Award {
	ordered := make([]Selector, len(selectors))
	copy(ordered, selectors)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].BettorID.String() < ordered[j].BettorID.String()
	})

	n := decimal.NewFromInt(int64(len(ordered)))
	each := amount.Div(n).RoundDown(2)
	payable := amount.RoundDown(2)
	leftoverCents := payable.Sub(each.Mul(n)).Mul(hundred).IntPart()

	awards := make([]Award, len(ordered))
	for i, s := range ordered {
		amt := each
		if int64(i) < leftoverCents {
			amt = amt.Add(decimal.New(1, -2))
		}
		awards[i] = Award{BettorID: s.BettorID, Amount: amt, Bonus: s.Bonus}
	}
	return awards
}
