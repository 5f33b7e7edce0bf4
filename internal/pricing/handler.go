package pricing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/common"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/validation"
)

// DistanceCalculator derives a trip distance from coordinates.
type DistanceCalculator interface {
	CalculateDistance(lat1, lon1, lat2, lon2 float64) float64
}

// ConditionsAggregator assembles market conditions from live data sources.
type ConditionsAggregator interface {
	Aggregate(ctx context.Context, zone, route string, at time.Time) (MarketConditions, error)
}

// QuoteRecorder persists issued breakdowns for audit.
type QuoteRecorder interface {
	Record(ctx context.Context, breakdown PriceBreakdown)
}

// Handler handles HTTP requests for pricing
type Handler struct {
	defaults Options
	geo      DistanceCalculator
	market   ConditionsAggregator
	quotes   QuoteRecorder
}

// NewHandler creates a new pricing handler. The aggregator and recorder are
// optional; nil disables condition aggregation and quote auditing.
func NewHandler(defaults Options, geo DistanceCalculator, market ConditionsAggregator, quotes QuoteRecorder) *Handler {
	return &Handler{defaults: defaults, geo: geo, market: market, quotes: quotes}
}

// QuoteRequest is the request body for a fare quote. Distance may be given
// directly or derived from pickup/dropoff coordinates.
type QuoteRequest struct {
	Strategy         string            `json:"strategy" binding:"omitempty,oneof=standard dynamic"`
	DistanceKm       *float64          `json:"distance_km,omitempty" binding:"omitempty,gte=0"`
	PickupLatitude   *float64          `json:"pickup_latitude,omitempty" binding:"omitempty,gte=-90,lte=90"`
	PickupLongitude  *float64          `json:"pickup_longitude,omitempty" binding:"omitempty,gte=-180,lte=180"`
	DropoffLatitude  *float64          `json:"dropoff_latitude,omitempty" binding:"omitempty,gte=-90,lte=90"`
	DropoffLongitude *float64          `json:"dropoff_longitude,omitempty" binding:"omitempty,gte=-180,lte=180"`
	PassengerCount   int               `json:"passenger_count" binding:"omitempty,gte=1"`
	VehicleType      string            `json:"vehicle_type"`
	Zone             string            `json:"zone,omitempty"`
	Route            string            `json:"route,omitempty"`
	MarketConditions *MarketConditions `json:"market_conditions,omitempty"`
}

// QuoteResponse wraps a breakdown with a display-ready fare string.
type QuoteResponse struct {
	PriceBreakdown
	FormattedTotal string `json:"formatted_total"`
}

// GetQuote calculates a fare quote
func (h *Handler) GetQuote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.FromBindingError(err))
		return
	}

	distance, err := h.resolveDistance(req)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	kind := req.Strategy
	if kind == "" {
		kind = StrategyStandard
	}

	strategy, err := NewStrategy(kind, h.defaults)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	conditions := req.MarketConditions
	if conditions == nil && kind == StrategyDynamic && h.market != nil {
		aggregated, err := h.market.Aggregate(c.Request.Context(), req.Zone, req.Route, now)
		if err == nil {
			conditions = &aggregated
		}
	}

	breakdown := strategy.CalculatePrice(PricingRequest{
		DistanceKm:     distance,
		PassengerCount: req.PassengerCount,
		VehicleType:    req.VehicleType,
		Conditions:     conditions,
		RequestedAt:    now,
	})

	if h.quotes != nil {
		h.quotes.Record(c.Request.Context(), breakdown)
	}

	common.SuccessResponse(c, QuoteResponse{
		PriceBreakdown: breakdown,
		FormattedTotal: fmt.Sprintf("%.0f %s", breakdown.Total, breakdown.Currency),
	})
}

// ListStrategies returns the strategy catalog
func (h *Handler) ListStrategies(c *gin.Context) {
	common.SuccessResponse(c, Catalog())
}

// SurgeRequest is the request body for a surge lookup.
type SurgeRequest struct {
	Zone             string            `json:"zone,omitempty"`
	Route            string            `json:"route,omitempty"`
	MarketConditions *MarketConditions `json:"market_conditions,omitempty"`
}

// SurgeResponse describes the current surge state.
type SurgeResponse struct {
	SurgeMultiplier float64 `json:"surge_multiplier"`
	IsSurgeActive   bool    `json:"is_surge_active"`
	SurgeReason     string  `json:"surge_reason,omitempty"`
}

// GetSurge returns the surge multiplier for supplied or aggregated conditions
func (h *Handler) GetSurge(c *gin.Context) {
	var req SurgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.FromBindingError(err))
		return
	}

	now := time.Now()
	conditions := req.MarketConditions
	if conditions == nil && h.market != nil {
		aggregated, err := h.market.Aggregate(c.Request.Context(), req.Zone, req.Route, now)
		if err == nil {
			conditions = &aggregated
		}
	}

	surge := evaluateSurge(conditions, h.defaults.withDefaults(), now)

	common.SuccessResponse(c, SurgeResponse{
		SurgeMultiplier: surge.multiplier,
		IsSurgeActive:   surge.active,
		SurgeReason:     surge.reason,
	})
}

// resolveDistance picks the explicit distance or derives one from coordinates.
func (h *Handler) resolveDistance(req QuoteRequest) (float64, error) {
	if req.DistanceKm != nil {
		return *req.DistanceKm, nil
	}

	if req.PickupLatitude == nil || req.PickupLongitude == nil ||
		req.DropoffLatitude == nil || req.DropoffLongitude == nil {
		return 0, errors.New("distance_km or pickup/dropoff coordinates are required")
	}
	if h.geo == nil {
		return 0, errors.New("distance_km is required")
	}

	return h.geo.CalculateDistance(
		*req.PickupLatitude, *req.PickupLongitude,
		*req.DropoffLatitude, *req.DropoffLongitude,
	), nil
}

// RegisterRoutes registers pricing routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	pricing := rg.Group("/pricing")
	{
		pricing.POST("/quote", h.GetQuote)
		pricing.POST("/surge", h.GetSurge)
		pricing.GET("/strategies", h.ListStrategies)
	}
}
