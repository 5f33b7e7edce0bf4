package pricing

// DynamicStrategy prices trips with a demand-based surge multiplier on top of
// the shared pipeline. Surge signals arrive pre-aggregated on the request.
type DynamicStrategy struct {
	opts Options
}

// NewDynamicStrategy creates a dynamic strategy with the given options.
func NewDynamicStrategy(opts Options) *DynamicStrategy {
	return &DynamicStrategy{opts: opts.withDefaults()}
}

// Name returns the strategy identifier.
func (s *DynamicStrategy) Name() string {
	return StrategyDynamic
}

// CalculatePrice evaluates surge from the request's market conditions, then
// runs the shared pipeline.
func (s *DynamicStrategy) CalculatePrice(req PricingRequest) PriceBreakdown {
	req = req.normalize()
	surge := evaluateSurge(req.Conditions, s.opts, req.RequestedAt)
	return buildBreakdown(s.Name(), s.opts, req, surge)
}
