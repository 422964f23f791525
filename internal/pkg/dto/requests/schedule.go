package requests

type TimeSlotInput struct {
	From string `json:"from" validate:"required,clock_time"`
	To   string `json:"to" validate:"required,clock_time"`
}

type AddSchedule struct {
	Date      string          `json:"date" validate:"required,schedule_date"`
	TimeSlots []TimeSlotInput `json:"timeSlots" validate:"required,min=1,dive"`
}
