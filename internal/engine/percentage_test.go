package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvfactor/dv-factor/internal/domain"
	"github.com/dvfactor/dv-factor/internal/engine"
)

func payoutRow(t *testing.T, month, count int, pct string) *domain.PayoutRow {
	t.Helper()
	return &domain.PayoutRow{Month: month, BettorsCount: count, Percentage: dec(t, pct)}
}

func TestResolver_Percentage(t *testing.T) {
	resolver, err := engine.NewResolver([]*domain.PayoutRow{
		payoutRow(t, 3, 1, "50.00"),
		payoutRow(t, 3, 2, "40.00"),
		payoutRow(t, 3, 3, "30.00"),
		payoutRow(t, 11, 1, "5.00"),
		payoutRow(t, 11, 2, "0.00"),
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		month int
		count int
		want  string
	}{
		{"exact row", 3, 2, "40.00"},
		{"another exact row", 3, 1, "50.00"},
		{"legitimate zero percent row", 11, 2, "0.00"},
		{"count above the table clamps to the last row", 3, 7, "30.00"},
		{"clamping applies per month", 11, 9, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Percentage(tt.month, tt.count)
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(t, tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestResolver_Percentage_IsPure(t *testing.T) {
	resolver, err := engine.NewResolver([]*domain.PayoutRow{
		payoutRow(t, 5, 1, "25.00"),
	})
	require.NoError(t, err)

	first, err := resolver.Percentage(5, 1)
	require.NoError(t, err)
	second, err := resolver.Percentage(5, 1)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestResolver_Percentage_MissingRow(t *testing.T) {
	resolver, err := engine.NewResolver([]*domain.PayoutRow{
		payoutRow(t, 3, 1, "50.00"),
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		month int
		count int
	}{
		{"unmodeled month", 4, 1},
		{"zero selectors", 3, 0},
		{"negative selectors", 3, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Percentage(tt.month, tt.count)
			require.Error(t, err)

			var missing *engine.MissingRowError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.month, missing.Month)
			assert.Equal(t, tt.count, missing.Count)
		})
	}
}

func TestNewResolver_RejectsInvalidRows(t *testing.T) {
	tests := []struct {
		name string
		rows []*domain.PayoutRow
	}{
		{"zero bettors row", []*domain.PayoutRow{payoutRow(t, 3, 0, "15.00")}},
		{"month out of range", []*domain.PayoutRow{payoutRow(t, 13, 1, "10.00")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.NewResolver(tt.rows)
			assert.Error(t, err)
		})
	}
}
