package contracts

import (
	"context"
	"flexera-service/internal/pkg/dto/requests"
	"flexera-service/internal/pkg/dto/responses"
)

type BookingInitiator struct {
	PatientID string
	Name      string
	Email     string
	Phone     string
}

type BookingUsecase interface {
	InitiateBookingPayment(ctx context.Context, initiator BookingInitiator, request *requests.BookingIntent) (*responses.BookingIntentResponse, error)
	CancelBooking(ctx context.Context, patientID string, request *requests.CancelBooking) error
}
