package pricing

// vehicleMultipliers maps each vehicle class to its fare multiplier.
var vehicleMultipliers = map[string]float64{
	VehicleEconomy:  0.9,
	VehicleStandard: 1.0,
	VehicleComfort:  1.2,
	VehiclePremium:  1.5,
	VehicleLuxury:   2.0,
	VehicleSUV:      1.3,
	VehicleVan:      1.4,
	VehicleBus:      1.8,
}

// VehicleMultiplier returns the fare multiplier for a vehicle class.
// Unknown classes price as standard (1.0); there is no failure mode.
func VehicleMultiplier(vehicleType string) float64 {
	if multiplier, ok := vehicleMultipliers[vehicleType]; ok {
		return multiplier
	}
	return 1.0
}
