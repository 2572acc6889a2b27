package usecase

import (
	"fmt"
	"math"
)

// ServiceChargeRate is the fixed platform fee applied on top of the room
// type's base price.
const ServiceChargeRate = 0.08

// ComputeTotal derives a booking's charge from the room type's base price
// at creation time. The result is rounded half-up to the cent and is never
// recomputed afterwards, so later price edits cannot change an existing
// booking.
func ComputeTotal(basePrice float64) (float64, error) {
	if math.IsNaN(basePrice) || math.IsInf(basePrice, 0) || basePrice <= 0 {
		return 0, fmt.Errorf("base price %v: %w", basePrice, ErrInvalidPrice)
	}

	serviceCharge := basePrice * ServiceChargeRate
	return round2(basePrice + serviceCharge), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
