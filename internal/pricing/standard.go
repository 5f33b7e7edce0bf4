package pricing

// StandardStrategy prices trips with fixed rates and no demand adjustment.
// Market conditions on the request are ignored.
type StandardStrategy struct {
	opts Options
}

// NewStandardStrategy creates a standard strategy with the given options.
func NewStandardStrategy(opts Options) *StandardStrategy {
	return &StandardStrategy{opts: opts.withDefaults()}
}

// Name returns the strategy identifier.
func (s *StandardStrategy) Name() string {
	return StrategyStandard
}

// CalculatePrice runs the shared pipeline with a neutral surge multiplier.
func (s *StandardStrategy) CalculatePrice(req PricingRequest) PriceBreakdown {
	req = req.normalize()
	return buildBreakdown(s.Name(), s.opts, req, noSurge(req.Conditions, req.RequestedAt))
}
