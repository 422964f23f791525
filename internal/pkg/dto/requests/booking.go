package requests

type BookingIntent struct {
	DoctorID string `json:"doctorId" validate:"required"`
	Date     string `json:"date" validate:"required"`
	SlotID   string `json:"slotIdentifier" validate:"required"`
}

type CancelBooking struct {
	ScheduleID string `json:"scheduleId" validate:"required"`
	SlotID     string `json:"slotIdentifier" validate:"required"`
}
