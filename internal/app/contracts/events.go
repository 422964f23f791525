package contracts

import "context"

const (
	EventBookingConfirmed    = "booking_confirmed"
	EventReservationReleased = "reservation_released"
)

// BookingEvent is handed off to the external notification pipeline through
// the message queue after a slot reaches a final state.
type BookingEvent struct {
	Type           string `json:"type"`
	ScheduleID     string `json:"schedule_id"`
	SlotID         string `json:"slot_id"`
	PractitionerID string `json:"practitioner_id"`
	PatientID      string `json:"patient_id,omitempty"`
	OrderID        string `json:"order_id"`
	TransactionID  string `json:"transaction_id,omitempty"`
	Date           string `json:"date"`
	From           string `json:"from"`
	To             string `json:"to"`
}

type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event *BookingEvent) error
}
