package engine_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvfactor/dv-factor/internal/domain"
	"github.com/dvfactor/dv-factor/internal/engine"
)

func resignedEmployee(t *testing.T, date string) *domain.Employee {
	t.Helper()
	emp := &domain.Employee{ID: uuid.New(), FirstName: "Test", LastName: "Employee", IsActive: true}
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	require.NoError(t, emp.Resign(d))
	return emp
}

func betOn(user uuid.UUID, edition uuid.UUID, picks [3]uuid.UUID, bonus *uuid.UUID) *domain.Bet {
	return &domain.Bet{
		ID:                  uuid.New(),
		UserID:              user,
		EditionID:           edition,
		Employee1ID:         picks[0],
		Employee2ID:         picks[1],
		Employee3ID:         picks[2],
		ChiringuitoEmployee: bonus,
	}
}

func TestSettle_RanksFollowResignationOrder(t *testing.T) {
	resolver, err := engine.NewResolver([]*domain.PayoutRow{
		payoutRow(t, 2, 1, "50.00"),
		payoutRow(t, 2, 2, "40.00"),
		payoutRow(t, 6, 1, "30.00"),
		payoutRow(t, 6, 2, "20.00"),
	})
	require.NoError(t, err)

	edition := uuid.New()
	first := resignedEmployee(t, "2026-02-10")  // month 2
	second := resignedEmployee(t, "2026-06-01") // month 6
	other := uuid.New()

	userA, userB := uuid.New(), uuid.New()
	bets := []*domain.Bet{
		betOn(userA, edition, [3]uuid.UUID{first.ID, second.ID, other}, nil),
		betOn(userB, edition, [3]uuid.UUID{first.ID, uuid.New(), uuid.New()}, nil),
	}

	// Pass the employees out of order; settlement must sort by date.
	result, err := engine.Settle(dec(t, "80.00"), resolver, []*domain.Employee{second, first}, bets)
	require.NoError(t, err)
	require.Len(t, result.Distributions, 2)

	assert.Equal(t, first.ID, result.Distributions[0].EmployeeID)
	assert.Equal(t, 1, result.Distributions[0].Rank)
	assert.Equal(t, second.ID, result.Distributions[1].EmployeeID)
	assert.Equal(t, 2, result.Distributions[1].Rank)

	// First: 40% x 70% x 80.00 = 22.40 over two selectors.
	assert.True(t, result.Distributions[0].Attributable.Equal(dec(t, "22.40")))
	// Second: 30% x 25% x 80.00 = 6.00 to the single selector.
	assert.True(t, result.Distributions[1].Attributable.Equal(dec(t, "6.00")))

	assert.True(t, result.Distributed.Equal(dec(t, "28.40")))
	assert.True(t, result.Forfeited.IsZero())
}

func TestSettle_UnselectedEmployeeForfeits(t *testing.T) {
	resolver, err := engine.NewResolver([]*domain.PayoutRow{
		payoutRow(t, 4, 1, "45.00"),
	})
	require.NoError(t, err)

	unpicked := resignedEmployee(t, "2026-04-15")

	result, err := engine.Settle(dec(t, "80.00"), resolver, []*domain.Employee{unpicked}, nil)
	require.NoError(t, err)
	require.Len(t, result.Distributions, 1)

	assert.True(t, result.Distributions[0].Attributable.IsZero())
	assert.Empty(t, result.Distributions[0].Awards)
	assert.True(t, result.Distributed.IsZero())
}

func TestSettle_UnpickedResignationStillConsumesRank(t *testing.T) {
	resolver, err := engine.NewResolver([]*domain.PayoutRow{
		payoutRow(t, 1, 1, "50.00"),
		payoutRow(t, 8, 1, "10.00"),
	})
	require.NoError(t, err)

	edition := uuid.New()
	unpicked := resignedEmployee(t, "2026-01-05")
	picked := resignedEmployee(t, "2026-08-20")

	user := uuid.New()
	bets := []*domain.Bet{
		betOn(user, edition, [3]uuid.UUID{picked.ID, uuid.New(), uuid.New()}, nil),
	}

	result, err := engine.Settle(dec(t, "100.00"), resolver, []*domain.Employee{picked, unpicked}, bets)
	require.NoError(t, err)
	require.Len(t, result.Distributions, 2)

	// The unpicked January resignation is rank 1; the picked August one
	// is rank 2 and carries 25%: 10% x 25% x 100.00 = 2.50.
	assert.Equal(t, 2, result.Distributions[1].Rank)
	assert.True(t, result.Distributions[1].Attributable.Equal(dec(t, "2.50")))
}

func TestSettle_MissingResignationDate(t *testing.T) {
	resolver, err := engine.NewResolver([]*domain.PayoutRow{payoutRow(t, 1, 1, "50.00")})
	require.NoError(t, err)

	active := &domain.Employee{ID: uuid.New(), IsActive: true}
	_, err = engine.Settle(dec(t, "80.00"), resolver, []*domain.Employee{active}, nil)
	assert.Error(t, err)
}

func TestSettle_Deterministic(t *testing.T) {
	resolver, err := engine.NewResolver([]*domain.PayoutRow{
		payoutRow(t, 3, 1, "50.00"),
		payoutRow(t, 3, 2, "40.00"),
		payoutRow(t, 3, 3, "30.00"),
	})
	require.NoError(t, err)

	edition := uuid.New()
	emp := resignedEmployee(t, "2026-03-03")
	bonus := emp.ID
	bets := []*domain.Bet{
		betOn(uuid.New(), edition, [3]uuid.UUID{emp.ID, uuid.New(), uuid.New()}, &bonus),
		betOn(uuid.New(), edition, [3]uuid.UUID{emp.ID, uuid.New(), uuid.New()}, nil),
		betOn(uuid.New(), edition, [3]uuid.UUID{emp.ID, uuid.New(), uuid.New()}, nil),
	}

	first, err := engine.Settle(dec(t, "80.00"), resolver, []*domain.Employee{emp}, bets)
	require.NoError(t, err)
	second, err := engine.Settle(dec(t, "80.00"), resolver, []*domain.Employee{emp}, bets)
	require.NoError(t, err)

	require.Len(t, first.Distributions, 1)
	require.Equal(t, len(first.Distributions[0].Awards), len(second.Distributions[0].Awards))
	for i := range first.Distributions[0].Awards {
		assert.Equal(t, first.Distributions[0].Awards[i], second.Distributions[0].Awards[i])
	}
	assert.True(t, first.Distributed.Equal(second.Distributed))
}
