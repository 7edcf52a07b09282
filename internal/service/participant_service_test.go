package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvfactor/dv-factor/internal/domain"
	repoPostgres "github.com/dvfactor/dv-factor/internal/repository/postgres"
	"github.com/dvfactor/dv-factor/internal/service"
	"github.com/dvfactor/dv-factor/internal/testutil"
)

func TestParticipantService_EnsureEnrollment(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := repoPostgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig())
	ctx := context.Background()

	t.Run("enrolls at the edition entry fee", func(t *testing.T) {
		testDB.Truncate(t)

		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		edition := testutil.NewEditionBuilder().Build(t, testDB.DB)

		participant, err := services.Participant.EnsureEnrollment(ctx, user.ID, edition.ID)
		require.NoError(t, err)

		testutil.AssertDecimalEqual(t, edition.EntryFee, participant.PaymentAmount)
		assert.False(t, participant.PaymentConfirmed)
		assert.Nil(t, participant.PaymentDate)
	})

	t.Run("re-enrolling keeps the existing row", func(t *testing.T) {
		testDB.Truncate(t)

		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		edition := testutil.NewEditionBuilder().Build(t, testDB.DB)

		first, err := services.Participant.EnsureEnrollment(ctx, user.ID, edition.ID)
		require.NoError(t, err)

		_, _, err = services.Participant.ConfirmPayment(ctx, first.ID)
		require.NoError(t, err)

		second, err := services.Participant.EnsureEnrollment(ctx, user.ID, edition.ID)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.True(t, second.PaymentConfirmed, "re-enrollment must not reset a confirmed payment")
	})

	t.Run("closed edition rejects enrollment", func(t *testing.T) {
		testDB.Truncate(t)

		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		edition := testutil.NewEditionBuilder().WithStatus(domain.EditionStatusClosed).Build(t, testDB.DB)

		_, err := services.Participant.EnsureEnrollment(ctx, user.ID, edition.ID)
		assert.ErrorIs(t, err, domain.ErrEditionNotOpen)
	})
}

func TestParticipantService_PaymentLifecycle(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := repoPostgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig())
	ctx := context.Background()

	t.Run("confirming payments grows the pool", func(t *testing.T) {
		testDB.Truncate(t)

		edition := testutil.NewEditionBuilder().
			WithJackpot(decimal.NewFromFloat(50.00)).
			Build(t, testDB.DB)

		var participants []*domain.Participant
		for i := 0; i < 3; i++ {
			user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
			p, err := services.Participant.EnsureEnrollment(ctx, user.ID, edition.ID)
			require.NoError(t, err)
			participants = append(participants, p)
		}

		var pool decimal.Decimal
		for _, p := range participants {
			var err error
			_, pool, err = services.Participant.ConfirmPayment(ctx, p.ID)
			require.NoError(t, err)
		}

		// 50.00 jackpot + 3 x 3.00 entry fees
		testutil.AssertDecimalEqual(t, decimal.NewFromFloat(59.00), pool)

		stored, err := services.Edition.GetEdition(ctx, edition.ID)
		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromFloat(59.00), stored.TotalPool)
	})

	t.Run("cancelling a payment shrinks the pool", func(t *testing.T) {
		testDB.Truncate(t)

		edition := testutil.NewEditionBuilder().
			WithJackpot(decimal.NewFromFloat(50.00)).
			Build(t, testDB.DB)
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		participant, err := services.Participant.EnsureEnrollment(ctx, user.ID, edition.ID)
		require.NoError(t, err)

		confirmed, pool, err := services.Participant.ConfirmPayment(ctx, participant.ID)
		require.NoError(t, err)
		assert.True(t, confirmed.PaymentConfirmed)
		assert.NotNil(t, confirmed.PaymentDate)
		testutil.AssertDecimalEqual(t, decimal.NewFromFloat(53.00), pool)

		cancelled, pool, err := services.Participant.CancelPayment(ctx, participant.ID)
		require.NoError(t, err)
		assert.False(t, cancelled.PaymentConfirmed)
		assert.Nil(t, cancelled.PaymentDate)
		testutil.AssertDecimalEqual(t, decimal.NewFromFloat(50.00), pool)
	})
}
