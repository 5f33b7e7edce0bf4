package pricing

import (
	"strings"
	"time"
)

// weatherTerms maps weather conditions to their additive surge contribution.
var weatherTerms = map[string]float64{
	WeatherClear:     0,
	WeatherCloudy:    0,
	WeatherRain:      0.2,
	WeatherHeavyRain: 0.4,
	WeatherSnow:      0.5,
	WeatherFog:       0.3,
	WeatherStorm:     0.6,
}

// surgeResult is the outcome of a surge evaluation.
type surgeResult struct {
	multiplier float64
	reason     string
	active     bool
	conditions resolvedConditions
}

// noSurge is the neutral result used by the standard strategy.
func noSurge(cond *MarketConditions, at time.Time) surgeResult {
	return surgeResult{multiplier: 1, conditions: cond.resolve(at)}
}

// evaluateSurge combines the independent demand, time, holiday, weather and
// route-popularity signals into one bounded multiplier. Terms are additive,
// not multiplicative, and the cap is applied once at the end so simultaneous
// surges saturate instead of compounding.
func evaluateSurge(cond *MarketConditions, opts Options, at time.Time) surgeResult {
	c := cond.resolve(at)

	multiplier := 1.0

	// Demand term, bounded so it alone can never exceed the cap.
	if c.DemandRatio > opts.DemandThreshold {
		term := (c.DemandRatio - 1) * 0.5
		if limit := opts.MaxSurgeMultiplier - 1; term > limit {
			term = limit
		}
		multiplier += term
	}

	// Rush-hour term, weekdays only.
	if !c.IsWeekend {
		multiplier += rushHourTerm(c.HourOfDay)
	}

	if c.IsHoliday {
		multiplier += 0.3
	}

	multiplier += weatherTerms[c.WeatherCondition]

	if c.RoutePopularity > 1.5 {
		multiplier += 0.2
	}

	if multiplier > opts.MaxSurgeMultiplier {
		multiplier = opts.MaxSurgeMultiplier
	}

	return surgeResult{
		multiplier: multiplier,
		reason:     surgeReason(c, opts),
		active:     multiplier > 1,
		conditions: c,
	}
}

// rushHourTerm returns the additive term for the given hour of day.
func rushHourTerm(hour int) float64 {
	switch {
	case hour >= 7 && hour <= 9:
		return 0.4
	case hour >= 12 && hour <= 14:
		return 0.2
	case hour >= 17 && hour <= 20:
		return 0.5
	case hour >= 23 || hour <= 5:
		return 0.3
	default:
		return 0
	}
}

// surgeReason describes which raw conditions were active. It is derived
// independently from the multiplier and is purely explanatory.
func surgeReason(c resolvedConditions, opts Options) string {
	var reasons []string

	if c.DemandRatio > opts.DemandThreshold {
		reasons = append(reasons, "high demand")
	}
	if (c.HourOfDay >= 7 && c.HourOfDay <= 9) || (c.HourOfDay >= 17 && c.HourOfDay <= 20) {
		reasons = append(reasons, "rush hour")
	}
	if c.IsHoliday {
		reasons = append(reasons, "holiday")
	}
	if c.WeatherCondition != WeatherClear {
		reasons = append(reasons, "weather conditions")
	}

	return strings.Join(reasons, ", ")
}
