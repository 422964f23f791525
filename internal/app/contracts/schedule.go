package contracts

import (
	"context"
	"flexera-service/internal/app/models"
	"flexera-service/internal/pkg/dto/requests"
	"time"
)

// ScheduleRepository is the sole writer of persisted schedule state. The
// *Slot methods are single conditional updates: each one matches the slot
// only in its expected precursor state and mutates it in the same database
// operation, so two racing callers can never both win.
type ScheduleRepository interface {
	FindByPractitionerAndDate(ctx context.Context, practitionerID, date string) (*models.PractitionerSchedule, error)
	FindByPractitioner(ctx context.Context, practitionerID string) ([]models.PractitionerSchedule, error)
	FindByDate(ctx context.Context, date string) ([]models.PractitionerSchedule, error)
	FindByBookedPatient(ctx context.Context, patientID string) ([]models.PractitionerSchedule, error)
	CreateSchedule(ctx context.Context, schedule *models.PractitionerSchedule) (*models.PractitionerSchedule, error)
	AppendSlots(ctx context.Context, scheduleID string, slots []models.Slot) error
	RemoveOpenSlot(ctx context.Context, scheduleID, slotID string) (bool, error)

	// ReserveSlot transitions (practitioner, date, slot) from open to
	// pending_payment, recording owner, price snapshot and reservation time.
	// Returns false when the slot was not open.
	ReserveSlot(ctx context.Context, practitionerID, date, slotID, patientID string, price float64, reservedAt time.Time) (bool, error)
	// AttachOrder stores the provider order id on a pending slot. Order id
	// uniqueness across all slots is enforced by a unique index.
	AttachOrder(ctx context.Context, slotID, orderID string) (bool, error)
	FindSlotByOrder(ctx context.Context, orderID string) (*models.PractitionerSchedule, *models.Slot, error)
	// BookSlotByOrder transitions pending_payment -> booked, storing the
	// transaction id. Returns false when the slot is no longer pending.
	BookSlotByOrder(ctx context.Context, orderID, transactionID string) (bool, error)
	// ReleaseSlotByOrder transitions pending_payment -> open, clearing owner,
	// order id, transaction id, price and reservation time.
	ReleaseSlotByOrder(ctx context.Context, orderID string) (bool, error)
	// ReleaseSlotByID is the same transition addressed by slot id, used by the
	// compensating rollback before an order id exists.
	ReleaseSlotByID(ctx context.Context, slotID string) (bool, error)
	// ReleaseBookedSlot transitions booked -> open for a patient-initiated
	// cancellation, guarded by slot ownership.
	ReleaseBookedSlot(ctx context.Context, scheduleID, slotID, patientID string) (bool, error)
	// ExpireStalePending releases every pending_payment slot reserved before
	// cutoff, returning the number of schedule documents touched.
	ExpireStalePending(ctx context.Context, cutoff time.Time) (int64, error)
}

type ScheduleUsecase interface {
	AddSlots(ctx context.Context, practitionerID string, request *requests.AddSchedule) (*models.PractitionerSchedule, error)
	RemoveSlot(ctx context.Context, practitionerID, scheduleID, slotID string) error
	ListForPractitioner(ctx context.Context, practitionerID string) ([]models.PractitionerSchedule, error)
	ListForDate(ctx context.Context, date string) ([]models.PractitionerSchedule, error)
	ListAppointmentsForPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListAppointmentsForPractitioner(ctx context.Context, practitionerID string) ([]models.Appointment, error)
}
