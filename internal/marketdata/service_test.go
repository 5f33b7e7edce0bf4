package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Belhormamohamed13/RohWinBghit-sub002/internal/pricing"
)

var evaluationTime = time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)

func TestAggregate_AssemblesSignals(t *testing.T) {
	db, mock := redismock.NewClientMock()
	service := NewService(NewRedisStore(db))

	mock.ExpectGet("drivers:online:algiers-center").SetVal("10")
	mock.ExpectGet("bookings:active:algiers-center").SetVal("25")
	mock.ExpectGet("route:requests:algiers-center:airport").SetVal("40")
	mock.ExpectGet("weather:current:algiers-center").SetVal(pricing.WeatherRain)
	mock.ExpectExists("calendar:holiday:2025-03-12").SetVal(1)

	conditions, err := service.Aggregate(context.Background(), "algiers-center", "algiers-center:airport", evaluationTime)

	require.NoError(t, err)
	require.NotNil(t, conditions.DemandRatio)
	assert.InDelta(t, 2.5, *conditions.DemandRatio, 1e-9)
	require.NotNil(t, conditions.RoutePopularity)
	assert.InDelta(t, 2.0, *conditions.RoutePopularity, 1e-9)
	assert.Equal(t, pricing.WeatherRain, conditions.WeatherCondition)
	assert.True(t, conditions.IsHoliday)
	assert.Nil(t, conditions.HourOfDay)
	assert.Nil(t, conditions.IsWeekend)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregate_MissingKeysYieldNeutralConditions(t *testing.T) {
	db, mock := redismock.NewClientMock()
	service := NewService(NewRedisStore(db))

	mock.ExpectGet("drivers:online:oran").RedisNil()
	mock.ExpectGet("bookings:active:oran").RedisNil()
	mock.ExpectGet("weather:current:oran").RedisNil()
	mock.ExpectExists("calendar:holiday:2025-03-12").SetVal(0)

	conditions, err := service.Aggregate(context.Background(), "oran", "", evaluationTime)

	require.NoError(t, err)
	require.NotNil(t, conditions.DemandRatio)
	assert.Equal(t, 1.0, *conditions.DemandRatio)
	assert.Nil(t, conditions.RoutePopularity)
	assert.Equal(t, pricing.WeatherClear, conditions.WeatherCondition)
	assert.False(t, conditions.IsHoliday)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregate_NoDriversWithOpenBookings(t *testing.T) {
	db, mock := redismock.NewClientMock()
	service := NewService(NewRedisStore(db))

	mock.ExpectGet("drivers:online:constantine").SetVal("0")
	mock.ExpectGet("bookings:active:constantine").SetVal("5")
	mock.ExpectGet("weather:current:constantine").RedisNil()
	mock.ExpectExists("calendar:holiday:2025-03-12").SetVal(0)

	conditions, err := service.Aggregate(context.Background(), "constantine", "", evaluationTime)

	require.NoError(t, err)
	require.NotNil(t, conditions.DemandRatio)
	assert.Equal(t, highDemandRatio, *conditions.DemandRatio)
}

func TestAggregate_FailsOpenOnStoreErrors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	service := NewService(NewRedisStore(db))

	down := errors.New("connection refused")
	mock.ExpectGet("drivers:online:algiers-center").SetErr(down)
	mock.ExpectGet("weather:current:algiers-center").SetErr(down)
	mock.ExpectExists("calendar:holiday:2025-03-12").SetErr(down)

	conditions, err := service.Aggregate(context.Background(), "algiers-center", "", evaluationTime)

	require.NoError(t, err)
	require.NotNil(t, conditions.DemandRatio)
	assert.Equal(t, 1.0, *conditions.DemandRatio)
	assert.Equal(t, pricing.WeatherClear, conditions.WeatherCondition)
	assert.False(t, conditions.IsHoliday)
}

func TestAggregate_FailedRouteLookupAssumesNormalPopularity(t *testing.T) {
	db, mock := redismock.NewClientMock()
	service := NewService(NewRedisStore(db))

	mock.ExpectGet("drivers:online:algiers-center").SetVal("8")
	mock.ExpectGet("bookings:active:algiers-center").SetVal("8")
	mock.ExpectGet("route:requests:algiers-center:airport").SetErr(errors.New("timeout"))
	mock.ExpectGet("weather:current:algiers-center").RedisNil()
	mock.ExpectExists("calendar:holiday:2025-03-12").SetVal(0)

	conditions, err := service.Aggregate(context.Background(), "algiers-center", "algiers-center:airport", evaluationTime)

	require.NoError(t, err)
	require.NotNil(t, conditions.RoutePopularity)
	assert.Equal(t, 1.0, *conditions.RoutePopularity)
}
