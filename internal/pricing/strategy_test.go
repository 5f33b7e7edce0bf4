package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Worked scenarios
// =============================================================================

func TestStandardStrategy_DefaultRates(t *testing.T) {
	strategy := NewStandardStrategy(Options{})

	breakdown := strategy.CalculatePrice(PricingRequest{
		DistanceKm:     20,
		PassengerCount: 1,
		VehicleType:    VehicleStandard,
		RequestedAt:    weekday,
	})

	assert.Equal(t, "standard", breakdown.StrategyName)
	assert.Equal(t, "DZD", breakdown.Currency)
	assert.Equal(t, 350.0, breakdown.BaseFare) // 50 + 20*15
	assert.Equal(t, 1.0, breakdown.VehicleMultiplier)
	assert.Equal(t, 1.0, breakdown.SurgeMultiplier)
	assert.Equal(t, 0.0, breakdown.SurgePrice)
	assert.False(t, breakdown.IsSurgeActive)
	assert.Equal(t, 0.0, breakdown.PassengerSurcharge)
	assert.Equal(t, 350.0, breakdown.Subtotal)
	assert.Equal(t, 35.0, breakdown.PlatformFee)
	assert.Equal(t, 385.0, breakdown.Total)
}

func TestStandardStrategy_MinimumFareFloor(t *testing.T) {
	strategy := NewStandardStrategy(Options{})

	breakdown := strategy.CalculatePrice(PricingRequest{
		DistanceKm:     1,
		PassengerCount: 1,
		VehicleType:    VehicleEconomy,
		RequestedAt:    weekday,
	})

	// (50 + 15) * 0.9 = 58.5; base fare rounds to 59 at output but the
	// floor applies to the unrounded amount.
	assert.Equal(t, 59.0, breakdown.BaseFare)
	assert.Equal(t, 0.9, breakdown.VehicleMultiplier)
	assert.Equal(t, 100.0, breakdown.Subtotal)
	assert.Equal(t, 10.0, breakdown.PlatformFee)
	assert.Equal(t, 110.0, breakdown.Total)
}

func TestDynamicStrategy_SurgeScenario(t *testing.T) {
	strategy := NewDynamicStrategy(Options{})

	breakdown := strategy.CalculatePrice(PricingRequest{
		DistanceKm:     20,
		PassengerCount: 3,
		VehicleType:    VehicleStandard,
		Conditions: &MarketConditions{
			DemandRatio:      floatPtr(2.5),
			HourOfDay:        intPtr(18),
			IsWeekend:        boolPtr(false),
			IsHoliday:        false,
			WeatherCondition: WeatherRain,
			RoutePopularity:  floatPtr(1),
		},
		RequestedAt: weekday,
	})

	// surge = 1 + 0.75 + 0.5 + 0.2 = 2.45
	assert.Equal(t, "dynamic", breakdown.StrategyName)
	assert.InDelta(t, 2.45, breakdown.SurgeMultiplier, 1e-9)
	assert.True(t, breakdown.IsSurgeActive)
	assert.Equal(t, 350.0, breakdown.BaseFare)
	assert.Equal(t, 508.0, breakdown.SurgePrice) // 350 * 1.45 = 507.5
	assert.Equal(t, 40.0, breakdown.PassengerSurcharge)
	assert.Equal(t, 898.0, breakdown.Subtotal)   // 350*2.45 + 40 = 897.5
	assert.Equal(t, 90.0, breakdown.PlatformFee) // 897.5 * 0.10 = 89.75
	assert.Equal(t, 987.0, breakdown.Total)      // 987.25, rounded independently
}

func TestStandardStrategy_IgnoresSurgeConditions(t *testing.T) {
	strategy := NewStandardStrategy(Options{})

	breakdown := strategy.CalculatePrice(PricingRequest{
		DistanceKm:     20,
		PassengerCount: 1,
		VehicleType:    VehicleStandard,
		Conditions: &MarketConditions{
			DemandRatio:      floatPtr(3),
			HourOfDay:        intPtr(18),
			IsWeekend:        boolPtr(false),
			IsHoliday:        true,
			WeatherCondition: WeatherStorm,
			RoutePopularity:  floatPtr(2),
		},
		RequestedAt: weekday,
	})

	// Surge-heavy conditions still price flat on the standard strategy, but
	// the supplied conditions are echoed for audit.
	assert.Equal(t, 1.0, breakdown.SurgeMultiplier)
	assert.Equal(t, 0.0, breakdown.SurgePrice)
	assert.False(t, breakdown.IsSurgeActive)
	assert.Empty(t, breakdown.SurgeReason)
	assert.Equal(t, 385.0, breakdown.Total)
	require.NotNil(t, breakdown.Breakdown.Conditions)
	assert.Equal(t, 3.0, breakdown.Breakdown.Conditions.DemandRatio)
}

func TestStrategies_UnknownVehicleTypePricesAsStandard(t *testing.T) {
	strategy := NewStandardStrategy(Options{})

	unknown := strategy.CalculatePrice(PricingRequest{DistanceKm: 20, VehicleType: "hatchback", RequestedAt: weekday})
	standard := strategy.CalculatePrice(PricingRequest{DistanceKm: 20, VehicleType: VehicleStandard, RequestedAt: weekday})

	assert.Equal(t, standard.Total, unknown.Total)
	assert.Equal(t, 1.0, unknown.VehicleMultiplier)
}

// =============================================================================
// Input defaults
// =============================================================================

func TestCalculatePrice_InputDefaults(t *testing.T) {
	strategy := NewStandardStrategy(Options{})

	breakdown := strategy.CalculatePrice(PricingRequest{DistanceKm: 20, RequestedAt: weekday})

	assert.Equal(t, 1, breakdown.Breakdown.PassengerCount)
	assert.Equal(t, VehicleStandard, breakdown.Breakdown.VehicleType)
	assert.Equal(t, 0.0, breakdown.PassengerSurcharge)
}

func TestCalculatePrice_PassengerSurcharge(t *testing.T) {
	strategy := NewStandardStrategy(Options{})

	tests := []struct {
		passengers int
		surcharge  float64
	}{
		{1, 0},
		{2, 20},
		{4, 60},
	}

	for _, tt := range tests {
		breakdown := strategy.CalculatePrice(PricingRequest{
			DistanceKm:     20,
			PassengerCount: tt.passengers,
			RequestedAt:    weekday,
		})
		assert.Equal(t, tt.surcharge, breakdown.PassengerSurcharge, "passengers=%d", tt.passengers)
	}
}

func TestCalculatePrice_CustomOptions(t *testing.T) {
	strategy := NewStandardStrategy(Options{BaseFare: 100, PricePerKm: 30, MinimumFare: 500})

	breakdown := strategy.CalculatePrice(PricingRequest{DistanceKm: 5, RequestedAt: weekday})

	assert.Equal(t, 250.0, breakdown.BaseFare) // 100 + 5*30
	assert.Equal(t, 500.0, breakdown.Subtotal) // floored
	assert.Equal(t, 550.0, breakdown.Total)
}

// =============================================================================
// Properties
// =============================================================================

func TestCalculatePrice_Deterministic(t *testing.T) {
	for _, kind := range []string{StrategyStandard, StrategyDynamic} {
		strategy, err := NewStrategy(kind, Options{})
		require.NoError(t, err)

		req := PricingRequest{
			DistanceKm:     12.3,
			PassengerCount: 2,
			VehicleType:    VehicleComfort,
			Conditions: &MarketConditions{
				DemandRatio:      floatPtr(2.2),
				HourOfDay:        intPtr(8),
				IsWeekend:        boolPtr(false),
				WeatherCondition: WeatherFog,
				RoutePopularity:  floatPtr(1.7),
			},
			RequestedAt: weekday,
		}

		first := strategy.CalculatePrice(req)
		second := strategy.CalculatePrice(req)

		assert.Equal(t, first, second, "strategy %s", kind)
	}
}

func TestCalculatePrice_TotalMonotonicInDistance(t *testing.T) {
	strategy := NewDynamicStrategy(Options{})

	conditions := &MarketConditions{
		DemandRatio:      floatPtr(2),
		HourOfDay:        intPtr(18),
		IsWeekend:        boolPtr(false),
		WeatherCondition: WeatherRain,
		RoutePopularity:  floatPtr(1),
	}

	previous := -1.0
	for km := 0.0; km <= 100; km += 0.5 {
		breakdown := strategy.CalculatePrice(PricingRequest{
			DistanceKm:     km,
			PassengerCount: 2,
			VehicleType:    VehicleSUV,
			Conditions:     conditions,
			RequestedAt:    weekday,
		})

		assert.GreaterOrEqual(t, breakdown.Total, previous, "distance %.1f", km)
		previous = breakdown.Total
	}
}

func TestCalculatePrice_SubtotalNeverBelowMinimumFare(t *testing.T) {
	for _, kind := range []string{StrategyStandard, StrategyDynamic} {
		strategy, err := NewStrategy(kind, Options{})
		require.NoError(t, err)

		for _, km := range []float64{0, 0.1, 1, 2, 3} {
			breakdown := strategy.CalculatePrice(PricingRequest{
				DistanceKm:  km,
				VehicleType: VehicleEconomy,
				RequestedAt: weekday,
			})

			assert.GreaterOrEqual(t, breakdown.Subtotal, DefaultMinimumFare,
				"strategy %s, distance %.1f", kind, km)
		}
	}
}

func TestCalculatePrice_TotalDecomposition(t *testing.T) {
	strategy := NewDynamicStrategy(Options{})

	conditions := &MarketConditions{
		DemandRatio:      floatPtr(2.5),
		HourOfDay:        intPtr(18),
		IsWeekend:        boolPtr(false),
		WeatherCondition: WeatherRain,
		RoutePopularity:  floatPtr(1),
	}

	for _, km := range []float64{0.7, 1.3, 5.5, 20, 33.33, 47.1} {
		breakdown := strategy.CalculatePrice(PricingRequest{
			DistanceKm:     km,
			PassengerCount: 3,
			Conditions:     conditions,
			RequestedAt:    weekday,
		})

		// Fields are rounded independently, so the identity holds within
		// one dinar, not exactly.
		assert.InDelta(t, breakdown.Subtotal+breakdown.PlatformFee, breakdown.Total, 1.0, "distance %.2f", km)
		assert.InDelta(t, breakdown.Subtotal*0.10, breakdown.PlatformFee, 1.0, "distance %.2f", km)
	}
}

func TestCalculatePrice_MonetaryFieldsAreWholeNonNegative(t *testing.T) {
	strategy := NewDynamicStrategy(Options{})

	breakdown := strategy.CalculatePrice(PricingRequest{
		DistanceKm:     7.77,
		PassengerCount: 2,
		VehicleType:    VehicleLuxury,
		Conditions: &MarketConditions{
			DemandRatio:      floatPtr(3),
			HourOfDay:        intPtr(18),
			IsWeekend:        boolPtr(false),
			WeatherCondition: WeatherStorm,
			RoutePopularity:  floatPtr(2),
		},
		RequestedAt: weekday,
	})

	for name, value := range map[string]float64{
		"base_fare":           breakdown.BaseFare,
		"surge_price":         breakdown.SurgePrice,
		"passenger_surcharge": breakdown.PassengerSurcharge,
		"subtotal":            breakdown.Subtotal,
		"platform_fee":        breakdown.PlatformFee,
		"total":               breakdown.Total,
	} {
		assert.GreaterOrEqual(t, value, 0.0, name)
		assert.Equal(t, value, roundDZD(value), "%s must be a whole amount", name)
	}
}

func TestDynamicStrategy_NeutralConditionsMatchStandard(t *testing.T) {
	standard := NewStandardStrategy(Options{})
	dynamic := NewDynamicStrategy(Options{})

	req := PricingRequest{
		DistanceKm:     14,
		PassengerCount: 2,
		VehicleType:    VehiclePremium,
		Conditions:     neutralConditions(),
		RequestedAt:    weekday,
	}

	fromStandard := standard.CalculatePrice(req)
	fromDynamic := dynamic.CalculatePrice(req)

	assert.Equal(t, 1.0, fromDynamic.SurgeMultiplier)
	assert.False(t, fromDynamic.IsSurgeActive)
	assert.Equal(t, fromStandard.Total, fromDynamic.Total)
	assert.Equal(t, fromStandard.Subtotal, fromDynamic.Subtotal)
	assert.Equal(t, fromStandard.PlatformFee, fromDynamic.PlatformFee)
}

func TestCalculatePrice_EchoesNormalizedInputs(t *testing.T) {
	strategy := NewDynamicStrategy(Options{})

	breakdown := strategy.CalculatePrice(PricingRequest{
		DistanceKm:  20,
		VehicleType: VehicleVan,
		Conditions: &MarketConditions{
			DemandRatio:      floatPtr(2.5),
			HourOfDay:        intPtr(18),
			IsWeekend:        boolPtr(false),
			WeatherCondition: WeatherRain,
		},
		RequestedAt: weekday,
	})

	require.NotNil(t, breakdown.Breakdown.Conditions)
	assert.Equal(t, 20.0, breakdown.Breakdown.DistanceKm)
	assert.Equal(t, 1, breakdown.Breakdown.PassengerCount)
	assert.Equal(t, VehicleVan, breakdown.Breakdown.VehicleType)
	assert.Equal(t, 2.5, breakdown.Breakdown.Conditions.DemandRatio)
	assert.Equal(t, 18, breakdown.Breakdown.Conditions.HourOfDay)
	assert.Equal(t, WeatherRain, breakdown.Breakdown.Conditions.WeatherCondition)
	assert.Equal(t, 1.0, breakdown.Breakdown.Conditions.RoutePopularity)
}
