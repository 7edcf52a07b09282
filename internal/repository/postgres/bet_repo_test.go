package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvfactor/dv-factor/internal/domain"
	"github.com/dvfactor/dv-factor/internal/repository/postgres"
	"github.com/dvfactor/dv-factor/internal/testutil"
)

func TestBetRepository_Upsert(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	t.Run("second upsert overwrites the first bet", func(t *testing.T) {
		testDB.Truncate(t)

		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		edition := testutil.NewEditionBuilder().Build(t, testDB.DB)
		employees := testutil.SeedEmployees(t, testDB.DB, 4)

		first := &domain.Bet{
			ID:                  uuid.New(),
			UserID:              user.ID,
			EditionID:           edition.ID,
			Employee1ID:         employees[0].ID,
			Employee2ID:         employees[1].ID,
			Employee3ID:         employees[2].ID,
			ChiringuitoEmployee: &employees[0].ID,
			CreatedAt:           time.Now(),
			UpdatedAt:           time.Now(),
		}
		require.NoError(t, repos.Bet.Upsert(ctx, first))

		second := &domain.Bet{
			ID:          uuid.New(),
			UserID:      user.ID,
			EditionID:   edition.ID,
			Employee1ID: employees[1].ID,
			Employee2ID: employees[2].ID,
			Employee3ID: employees[3].ID,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		require.NoError(t, repos.Bet.Upsert(ctx, second))

		bets, err := repos.Bet.ListByEdition(ctx, edition.ID)
		require.NoError(t, err)
		require.Len(t, bets, 1, "upsert must never create a second row for the pair")

		stored := bets[0]
		assert.Equal(t, first.ID, stored.ID, "the original row survives, updated in place")
		assert.Equal(t, employees[3].ID, stored.Employee3ID)
		assert.Nil(t, stored.ChiringuitoEmployee, "dropping the bonus on rebet clears the column")
	})

	t.Run("different editions keep separate bets", func(t *testing.T) {
		testDB.Truncate(t)

		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		edition1 := testutil.NewEditionBuilder().WithYear(2025).Build(t, testDB.DB)
		edition2 := testutil.NewEditionBuilder().
			WithYear(2026).
			WithStatus(domain.EditionStatusClosed).
			Build(t, testDB.DB)
		employees := testutil.SeedEmployees(t, testDB.DB, 3)
		picks := [3]uuid.UUID{employees[0].ID, employees[1].ID, employees[2].ID}

		testutil.NewBetBuilder(user, edition1, picks).Build(t, testDB.DB)
		testutil.NewBetBuilder(user, edition2, picks).Build(t, testDB.DB)

		bets1, err := repos.Bet.ListByEdition(ctx, edition1.ID)
		require.NoError(t, err)
		bets2, err := repos.Bet.ListByEdition(ctx, edition2.ID)
		require.NoError(t, err)
		assert.Len(t, bets1, 1)
		assert.Len(t, bets2, 1)
	})
}

func TestParticipantRepository_CreateIfAbsent(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	t.Run("duplicate enrollment returns the existing row", func(t *testing.T) {
		testDB.Truncate(t)

		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		edition := testutil.NewEditionBuilder().Build(t, testDB.DB)

		first, err := repos.Participant.CreateIfAbsent(ctx, &domain.Participant{
			ID:            uuid.New(),
			UserID:        user.ID,
			EditionID:     edition.ID,
			PaymentAmount: edition.EntryFee,
		})
		require.NoError(t, err)

		first.PaymentConfirmed = true
		require.NoError(t, repos.Participant.Update(ctx, first))

		second, err := repos.Participant.CreateIfAbsent(ctx, &domain.Participant{
			ID:            uuid.New(),
			UserID:        user.ID,
			EditionID:     edition.ID,
			PaymentAmount: edition.EntryFee,
		})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.True(t, second.PaymentConfirmed, "existing state must survive a duplicate insert")

		participants, err := repos.Participant.ListByEdition(ctx, edition.ID)
		require.NoError(t, err)
		assert.Len(t, participants, 1)
	})
}
