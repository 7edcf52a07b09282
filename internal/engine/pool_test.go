package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvfactor/dv-factor/internal/domain"
	"github.com/dvfactor/dv-factor/internal/engine"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func confirmedParticipant(t *testing.T, amount string) *domain.Participant {
	t.Helper()
	return &domain.Participant{PaymentAmount: dec(t, amount), PaymentConfirmed: true}
}

func TestComputePool(t *testing.T) {
	tests := []struct {
		name         string
		jackpot      string
		participants []*domain.Participant
		want         string
	}{
		{
			name:    "jackpot plus ten confirmed entry fees",
			jackpot: "50.00",
			participants: func() []*domain.Participant {
				var ps []*domain.Participant
				for i := 0; i < 10; i++ {
					ps = append(ps, confirmedParticipant(t, "3.00"))
				}
				return ps
			}(),
			want: "80.00",
		},
		{
			name:    "unconfirmed payments are excluded",
			jackpot: "50.00",
			participants: []*domain.Participant{
				confirmedParticipant(t, "3.00"),
				{PaymentAmount: dec(t, "3.00"), PaymentConfirmed: false},
			},
			want: "53.00",
		},
		{
			name:         "no participants yields the jackpot alone",
			jackpot:      "12.50",
			participants: nil,
			want:         "12.50",
		},
		{
			name:    "mixed payment amounts",
			jackpot: "0.00",
			participants: []*domain.Participant{
				confirmedParticipant(t, "3.00"),
				confirmedParticipant(t, "5.50"),
				confirmedParticipant(t, "1.25"),
			},
			want: "9.75",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.ComputePool(dec(t, tt.jackpot), tt.participants)
			assert.True(t, got.Equal(dec(t, tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestComputePool_Idempotent(t *testing.T) {
	jackpot := dec(t, "50.00")
	participants := []*domain.Participant{
		confirmedParticipant(t, "3.00"),
		confirmedParticipant(t, "3.00"),
	}

	first := engine.ComputePool(jackpot, participants)
	second := engine.ComputePool(jackpot, participants)

	assert.True(t, first.Equal(second), "recomputation changed the pool: %s vs %s", first, second)
	assert.Equal(t, first.String(), second.String())
}
