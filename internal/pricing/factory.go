package pricing

import (
	"errors"
	"fmt"
)

// Strategy identifiers accepted by NewStrategy.
const (
	StrategyStandard = "standard"
	StrategyDynamic  = "dynamic"
)

// ErrUnknownStrategy is returned by NewStrategy for unrecognized identifiers.
var ErrUnknownStrategy = errors.New("unknown pricing strategy")

// NewStrategy resolves a strategy identifier and options into a ready,
// reusable strategy instance.
func NewStrategy(kind string, opts Options) (Strategy, error) {
	switch kind {
	case StrategyStandard:
		return NewStandardStrategy(opts), nil
	case StrategyDynamic:
		return NewDynamicStrategy(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, kind)
	}
}

// StrategyInfo describes a strategy for discovery by callers (admin UI etc.).
type StrategyInfo struct {
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// Catalog returns descriptive metadata for every available strategy.
// It has no effect on the pricing algorithms themselves.
func Catalog() []StrategyInfo {
	return []StrategyInfo{
		{
			Kind:        StrategyStandard,
			DisplayName: "Standard",
			Description: "Fixed base fare plus per-kilometer rate, no demand adjustment",
		},
		{
			Kind:        StrategyDynamic,
			DisplayName: "Dynamic",
			Description: "Standard fare adjusted by a demand, time, weather and route-popularity surge multiplier",
		},
	}
}
