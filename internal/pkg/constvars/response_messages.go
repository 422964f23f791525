package constvars

const (
	ResponseScheduleCreated     = "Schedule added successfully"
	ResponseScheduleUpdated     = "Schedule updated successfully"
	ResponseScheduleFetched     = "Schedule fetched successfully"
	ResponseSlotRemoved         = "Time slot removed successfully"
	ResponseAppointmentsFetched = "Appointments fetched successfully"
	ResponseBookingCancelled    = "Booking cancelled successfully"
	ResponsePaymentInitiated    = "Payment initiated successfully"
	ResponseUnknown             = "unknown"
)
