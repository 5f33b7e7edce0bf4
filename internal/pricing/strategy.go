package pricing

import "math"

// Strategy prices a trip request into an itemized breakdown. Implementations
// are stateless after construction and safe for concurrent use.
type Strategy interface {
	Name() string
	CalculatePrice(req PricingRequest) PriceBreakdown
}

// Options configures a strategy created by NewStrategy. Zero fields fall back
// to the documented defaults, so Options{} is a valid configuration.
type Options struct {
	BaseFare    float64 `json:"base_fare,omitempty"`
	PricePerKm  float64 `json:"price_per_km,omitempty"`
	MinimumFare float64 `json:"minimum_fare,omitempty"`

	// Dynamic strategy only.
	MaxSurgeMultiplier float64 `json:"max_surge_multiplier,omitempty"`
	DemandThreshold    float64 `json:"demand_threshold,omitempty"`
}

// withDefaults fills zero fields with the documented defaults.
func (o Options) withDefaults() Options {
	if o.BaseFare == 0 {
		o.BaseFare = DefaultBaseFare
	}
	if o.PricePerKm == 0 {
		o.PricePerKm = DefaultPricePerKm
	}
	if o.MinimumFare == 0 {
		o.MinimumFare = DefaultMinimumFare
	}
	if o.MaxSurgeMultiplier == 0 {
		o.MaxSurgeMultiplier = DefaultMaxSurgeMultiplier
	}
	if o.DemandThreshold == 0 {
		o.DemandThreshold = DefaultDemandThreshold
	}
	return o
}

// buildBreakdown runs the pricing pipeline shared by both strategies.
// Intermediate amounts stay unrounded; every monetary output field is rounded
// independently at the end.
func buildBreakdown(name string, opts Options, req PricingRequest, surge surgeResult) PriceBreakdown {
	vehicleMultiplier := VehicleMultiplier(req.VehicleType)
	basePrice := (opts.BaseFare + req.DistanceKm*opts.PricePerKm) * vehicleMultiplier

	surgePrice := basePrice * (surge.multiplier - 1)
	priceAfterSurge := basePrice * surge.multiplier

	passengerSurcharge := float64(req.PassengerCount-1) * extraPassengerFee

	subtotal := priceAfterSurge + passengerSurcharge
	if subtotal < opts.MinimumFare {
		subtotal = opts.MinimumFare
	}

	platformFee := subtotal * platformFeeRate
	total := subtotal + platformFee

	echo := RequestEcho{
		DistanceKm:     req.DistanceKm,
		PassengerCount: req.PassengerCount,
		VehicleType:    req.VehicleType,
	}
	if req.Conditions != nil || surge.active {
		conditions := surge.conditions
		echo.Conditions = &conditions
	}

	return PriceBreakdown{
		StrategyName:       name,
		Currency:           Currency,
		BaseFare:           roundDZD(basePrice),
		VehicleMultiplier:  vehicleMultiplier,
		SurgeMultiplier:    surge.multiplier,
		SurgePrice:         roundDZD(surgePrice),
		IsSurgeActive:      surge.active,
		SurgeReason:        surge.reason,
		PassengerSurcharge: roundDZD(passengerSurcharge),
		Subtotal:           roundDZD(subtotal),
		PlatformFee:        roundDZD(platformFee),
		Total:              roundDZD(total),
		Breakdown:          echo,
	}
}

// roundDZD rounds a monetary amount to the nearest whole dinar.
func roundDZD(amount float64) float64 {
	return math.Round(amount)
}
