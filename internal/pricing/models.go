package pricing

import "time"

// Currency is the fixed settlement currency for all fares.
const Currency = "DZD"

// Vehicle class identifiers. Unknown values price as VehicleStandard.
const (
	VehicleEconomy  = "economy"
	VehicleStandard = "standard"
	VehicleComfort  = "comfort"
	VehiclePremium  = "premium"
	VehicleLuxury   = "luxury"
	VehicleSUV      = "suv"
	VehicleVan      = "van"
	VehicleBus      = "bus"
)

// Weather condition identifiers understood by the surge evaluator.
// Unknown values contribute no surge.
const (
	WeatherClear     = "clear"
	WeatherCloudy    = "cloudy"
	WeatherRain      = "rain"
	WeatherHeavyRain = "heavy-rain"
	WeatherSnow      = "snow"
	WeatherFog       = "fog"
	WeatherStorm     = "storm"
)

// Default fare parameters, in whole DZD unless noted.
const (
	DefaultBaseFare           = 50.0
	DefaultPricePerKm         = 15.0
	DefaultMinimumFare        = 100.0
	DefaultMaxSurgeMultiplier = 2.5
	DefaultDemandThreshold    = 1.5

	extraPassengerFee = 20.0
	platformFeeRate   = 0.10
)

// MarketConditions carries externally aggregated demand signals for the
// dynamic strategy. The engine never fetches these itself; callers assemble
// them from live data. Nil pointer fields fall back to defaults derived from
// the request's evaluation timestamp.
type MarketConditions struct {
	DemandRatio      *float64 `json:"demand_ratio,omitempty" binding:"omitempty,gte=0"`
	HourOfDay        *int     `json:"hour_of_day,omitempty" binding:"omitempty,gte=0,lte=23"`
	IsWeekend        *bool    `json:"is_weekend,omitempty"`
	IsHoliday        bool     `json:"is_holiday"`
	WeatherCondition string   `json:"weather_condition,omitempty"`
	RoutePopularity  *float64 `json:"route_popularity,omitempty"`
}

// resolvedConditions is MarketConditions with every default applied.
type resolvedConditions struct {
	DemandRatio      float64 `json:"demand_ratio"`
	HourOfDay        int     `json:"hour_of_day"`
	IsWeekend        bool    `json:"is_weekend"`
	IsHoliday        bool    `json:"is_holiday"`
	WeatherCondition string  `json:"weather_condition"`
	RoutePopularity  float64 `json:"route_popularity"`
}

// resolve applies defaults to missing fields. Clock-derived defaults (hour of
// day, weekend flag) come from the explicit evaluation timestamp so the surge
// evaluator stays a pure function. A nil receiver resolves to balanced
// conditions.
func (m *MarketConditions) resolve(at time.Time) resolvedConditions {
	resolved := resolvedConditions{
		DemandRatio:      1,
		HourOfDay:        at.Hour(),
		IsWeekend:        at.Weekday() == time.Saturday || at.Weekday() == time.Sunday,
		WeatherCondition: WeatherClear,
		RoutePopularity:  1,
	}
	if m == nil {
		return resolved
	}

	if m.DemandRatio != nil {
		resolved.DemandRatio = *m.DemandRatio
	}
	if m.HourOfDay != nil {
		resolved.HourOfDay = *m.HourOfDay
	}
	if m.IsWeekend != nil {
		resolved.IsWeekend = *m.IsWeekend
	}
	resolved.IsHoliday = m.IsHoliday
	if m.WeatherCondition != "" {
		resolved.WeatherCondition = m.WeatherCondition
	}
	if m.RoutePopularity != nil {
		resolved.RoutePopularity = *m.RoutePopularity
	}
	return resolved
}

// PricingRequest is the input to a single fare calculation.
type PricingRequest struct {
	DistanceKm     float64           `json:"distance_km"`
	PassengerCount int               `json:"passenger_count"`
	VehicleType    string            `json:"vehicle_type"`
	Conditions     *MarketConditions `json:"market_conditions,omitempty"`

	// RequestedAt is the evaluation timestamp used for clock-derived
	// condition defaults. Zero means "now".
	RequestedAt time.Time `json:"requested_at,omitempty"`
}

// normalize applies the documented input defaults.
func (r PricingRequest) normalize() PricingRequest {
	if r.PassengerCount < 1 {
		r.PassengerCount = 1
	}
	if r.VehicleType == "" {
		r.VehicleType = VehicleStandard
	}
	if r.RequestedAt.IsZero() {
		r.RequestedAt = time.Now()
	}
	return r
}

// RequestEcho mirrors the normalized inputs back to the caller for
// audit and display.
type RequestEcho struct {
	DistanceKm     float64             `json:"distance_km"`
	PassengerCount int                 `json:"passenger_count"`
	VehicleType    string              `json:"vehicle_type"`
	Conditions     *resolvedConditions `json:"market_conditions,omitempty"`
}

// PriceBreakdown is the itemized output of a fare calculation. All monetary
// fields are rounded independently to whole DZD; the rounding happens once,
// at output time, never on intermediate values.
type PriceBreakdown struct {
	StrategyName       string      `json:"strategy_name"`
	Currency           string      `json:"currency"`
	BaseFare           float64     `json:"base_fare"`
	VehicleMultiplier  float64     `json:"vehicle_multiplier"`
	SurgeMultiplier    float64     `json:"surge_multiplier"`
	SurgePrice         float64     `json:"surge_price"`
	IsSurgeActive      bool        `json:"is_surge_active"`
	SurgeReason        string      `json:"surge_reason,omitempty"`
	PassengerSurcharge float64     `json:"passenger_surcharge"`
	Subtotal           float64     `json:"subtotal"`
	PlatformFee        float64     `json:"platform_fee"`
	Total              float64     `json:"total"`
	Breakdown          RequestEcho `json:"breakdown"`
}
