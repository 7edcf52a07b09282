package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvfactor/dv-factor/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("requires a JWT secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("parses the default entry fee", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("DEFAULT_ENTRY_FEE", "5.50")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.True(t, cfg.DefaultEntryFee.Equal(decimal.NewFromFloat(5.50)))
	})

	t.Run("rejects a malformed entry fee", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("DEFAULT_ENTRY_FEE", "three euros")

		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DEFAULT_ENTRY_FEE")
	})

	t.Run("rejects a negative entry fee", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("DEFAULT_ENTRY_FEE", "-1.00")

		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DEFAULT_ENTRY_FEE")
	})
}
