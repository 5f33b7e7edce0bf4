package quotes

import (
	"time"

	"github.com/google/uuid"
)

// Quote is a persisted fare quote, one row per issued breakdown.
type Quote struct {
	ID                 uuid.UUID `json:"id"`
	Strategy           string    `json:"strategy"`
	Currency           string    `json:"currency"`
	DistanceKm         float64   `json:"distance_km"`
	PassengerCount     int       `json:"passenger_count"`
	VehicleType        string    `json:"vehicle_type"`
	BaseFare           float64   `json:"base_fare"`
	VehicleMultiplier  float64   `json:"vehicle_multiplier"`
	SurgeMultiplier    float64   `json:"surge_multiplier"`
	IsSurgeActive      bool      `json:"is_surge_active"`
	SurgeReason        string    `json:"surge_reason,omitempty"`
	PassengerSurcharge float64   `json:"passenger_surcharge"`
	Subtotal           float64   `json:"subtotal"`
	PlatformFee        float64   `json:"platform_fee"`
	Total              float64   `json:"total"`
	CreatedAt          time.Time `json:"created_at"`
}
