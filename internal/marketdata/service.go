package marketdata

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Belhormamohamed13/RohWinBghit-sub002/internal/pricing"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/logger"
)

const (
	// highDemandRatio stands in for the ratio when bookings exist but no
	// driver is online. The surge cap bounds its effect anyway.
	highDemandRatio = 3.0

	// routeRequestBaseline is the request count considered normal for a
	// route; popularity is measured against it.
	routeRequestBaseline = 20.0
)

// Service aggregates live market signals into pricing conditions. Every
// signal fails open: a missing or unreachable source yields its neutral
// value so quoting keeps working when Redis is degraded.
type Service struct {
	store Store
}

// NewService creates a new market data service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Aggregate assembles the market conditions for a zone and route at the
// given time. Hour of day and weekend are left for the pricing engine to
// derive from the timestamp.
func (s *Service) Aggregate(ctx context.Context, zone, route string, at time.Time) (pricing.MarketConditions, error) {
	conditions := pricing.MarketConditions{
		WeatherCondition: pricing.WeatherClear,
	}

	ratio := s.demandRatio(ctx, zone)
	conditions.DemandRatio = &ratio

	if route != "" {
		popularity := s.routePopularity(ctx, route)
		conditions.RoutePopularity = &popularity
	}

	if weather, err := s.store.WeatherCondition(ctx, zone); err != nil {
		logger.Warn("weather lookup failed, assuming clear", zap.String("zone", zone), zap.Error(err))
	} else if weather != "" {
		conditions.WeatherCondition = weather
	}

	if holiday, err := s.store.IsHoliday(ctx, at); err != nil {
		logger.Warn("holiday lookup failed, assuming regular day", zap.Error(err))
	} else {
		conditions.IsHoliday = holiday
	}

	return conditions, nil
}

// demandRatio computes active bookings per online driver for a zone.
func (s *Service) demandRatio(ctx context.Context, zone string) float64 {
	drivers, err := s.store.OnlineDrivers(ctx, zone)
	if err != nil {
		logger.Warn("driver count lookup failed, assuming balanced demand", zap.String("zone", zone), zap.Error(err))
		return 1.0
	}

	bookings, err := s.store.ActiveBookings(ctx, zone)
	if err != nil {
		logger.Warn("booking count lookup failed, assuming balanced demand", zap.String("zone", zone), zap.Error(err))
		return 1.0
	}

	switch {
	case drivers == 0 && bookings == 0:
		return 1.0
	case drivers == 0:
		return highDemandRatio
	default:
		return float64(bookings) / float64(drivers)
	}
}

// routePopularity measures recent route requests against the baseline.
func (s *Service) routePopularity(ctx context.Context, route string) float64 {
	requests, err := s.store.RouteRequests(ctx, route)
	if err != nil {
		logger.Warn("route request lookup failed, assuming normal popularity", zap.String("route", route), zap.Error(err))
		return 1.0
	}
	return float64(requests) / routeRequestBaseline
}
