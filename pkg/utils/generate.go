package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// GeneratePaymentReference builds the globally unique reference that
// correlates a booking with the gateway's charge record.
// Format: {prefix}_{bookingId}_{unix-timestamp}
func GeneratePaymentReference(prefix string, bookingID uuid.UUID) string {
	if prefix == "" {
		prefix = "RB"
	}
	return fmt.Sprintf("%s_%s_%d", prefix, bookingID.String(), time.Now().Unix())
}
