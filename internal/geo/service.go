package geo

import "math"

const (
	earthRadiusKm = 6371.0
	averageSpeed  = 40.0 // km/h in city traffic
)

// Service provides distance and travel-time calculations
type Service struct{}

// NewService creates a new geo service
func NewService() *Service {
	return &Service{}
}

// CalculateDistance calculates the haversine distance between two coordinates
// in kilometers, rounded to two decimals
func (s *Service) CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180.0)*math.Cos(lat2*math.Pi/180.0)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	distance := earthRadiusKm * c

	return math.Round(distance*100) / 100
}

// CalculateETA calculates estimated travel time in minutes
func (s *Service) CalculateETA(distance float64) int {
	eta := (distance / averageSpeed) * 60
	return int(math.Round(eta))
}
