package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store reads the live market signals that feed dynamic pricing.
type Store interface {
	OnlineDrivers(ctx context.Context, zone string) (int, error)
	ActiveBookings(ctx context.Context, zone string) (int, error)
	RouteRequests(ctx context.Context, route string) (int, error)
	WeatherCondition(ctx context.Context, zone string) (string, error)
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
}

// RedisStore reads market signals from Redis. Counters are maintained by the
// dispatch and booking services; this store only consumes them.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore creates a Redis-backed market data store
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

// OnlineDrivers returns the number of drivers currently online in a zone
func (s *RedisStore) OnlineDrivers(ctx context.Context, zone string) (int, error) {
	return s.getCount(ctx, fmt.Sprintf("drivers:online:%s", zone))
}

// ActiveBookings returns the number of open booking requests in a zone
func (s *RedisStore) ActiveBookings(ctx context.Context, zone string) (int, error) {
	return s.getCount(ctx, fmt.Sprintf("bookings:active:%s", zone))
}

// RouteRequests returns the recent request count for a route
func (s *RedisStore) RouteRequests(ctx context.Context, route string) (int, error) {
	return s.getCount(ctx, fmt.Sprintf("route:requests:%s", route))
}

// WeatherCondition returns the current weather condition for a zone
func (s *RedisStore) WeatherCondition(ctx context.Context, zone string) (string, error) {
	value, err := s.client.Get(ctx, fmt.Sprintf("weather:current:%s", zone)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// IsHoliday reports whether the given date is marked as a public holiday
func (s *RedisStore) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	key := fmt.Sprintf("calendar:holiday:%s", date.Format("2006-01-02"))
	count, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *RedisStore) getCount(ctx context.Context, key string) (int, error) {
	value, err := s.client.Get(ctx, key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return value, nil
}
