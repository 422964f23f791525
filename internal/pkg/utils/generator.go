package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

func GenerateSlotID() string {
	return uuid.NewString()
}

// GenerateMerchantReference builds a per-attempt unique order reference so the
// provider can disambiguate retried initiations for the same patient.
func GenerateMerchantReference(patientID string) string {
	return fmt.Sprintf("%s-%d", patientID, time.Now().UnixNano())
}
