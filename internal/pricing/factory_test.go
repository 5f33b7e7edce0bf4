package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStrategy(t *testing.T) {
	t.Run("standard", func(t *testing.T) {
		strategy, err := NewStrategy(StrategyStandard, Options{})

		require.NoError(t, err)
		assert.Equal(t, "standard", strategy.Name())
		assert.IsType(t, &StandardStrategy{}, strategy)
	})

	t.Run("dynamic", func(t *testing.T) {
		strategy, err := NewStrategy(StrategyDynamic, Options{})

		require.NoError(t, err)
		assert.Equal(t, "dynamic", strategy.Name())
		assert.IsType(t, &DynamicStrategy{}, strategy)
	})
}

func TestNewStrategy_UnknownKind(t *testing.T) {
	tests := []string{"premium", "surge", "", "Standard"}

	for _, kind := range tests {
		t.Run(kind, func(t *testing.T) {
			strategy, err := NewStrategy(kind, Options{})

			assert.Nil(t, strategy)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnknownStrategy)
			if kind != "" {
				assert.Contains(t, err.Error(), kind)
			}
		})
	}
}

func TestNewStrategy_AppliesOptionDefaults(t *testing.T) {
	strategy, err := NewStrategy(StrategyDynamic, Options{BaseFare: 80})
	require.NoError(t, err)

	breakdown := strategy.CalculatePrice(PricingRequest{
		DistanceKm:  10,
		Conditions:  neutralConditions(),
		RequestedAt: weekday,
	})

	// Custom base fare with default per-km rate: 80 + 10*15 = 230.
	assert.Equal(t, 230.0, breakdown.BaseFare)
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()

	require.Len(t, catalog, 2)

	kinds := make(map[string]StrategyInfo, len(catalog))
	for _, info := range catalog {
		kinds[info.Kind] = info
		assert.NotEmpty(t, info.DisplayName)
		assert.NotEmpty(t, info.Description)

		// Every cataloged kind must be constructible.
		_, err := NewStrategy(info.Kind, Options{})
		assert.NoError(t, err)
	}

	assert.Contains(t, kinds, StrategyStandard)
	assert.Contains(t, kinds, StrategyDynamic)
}
