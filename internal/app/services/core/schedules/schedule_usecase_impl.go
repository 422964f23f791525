package schedules

import (
	"context"
	"flexera-service/internal/app/contracts"
	"flexera-service/internal/app/models"
	"flexera-service/internal/pkg/constvars"
	"flexera-service/internal/pkg/dto/requests"
	"flexera-service/internal/pkg/exceptions"
	"flexera-service/internal/pkg/utils"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

type scheduleUsecase struct {
	ScheduleRepository contracts.ScheduleRepository
	Log                *zap.Logger
}

var (
	scheduleUsecaseInstance contracts.ScheduleUsecase
	onceScheduleUsecase     sync.Once
)

func NewScheduleUsecase(scheduleRepository contracts.ScheduleRepository, logger *zap.Logger) contracts.ScheduleUsecase {
	onceScheduleUsecase.Do(func() {
		scheduleUsecaseInstance = &scheduleUsecase{
			ScheduleRepository: scheduleRepository,
			Log:                logger,
		}
	})
	return scheduleUsecaseInstance
}

func (uc *scheduleUsecase) AddSlots(ctx context.Context, practitionerID string, request *requests.AddSchedule) (*models.PractitionerSchedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.AddSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerKey, practitionerID),
		zap.String(constvars.LoggingDateKey, request.Date),
	)

	parsedDate, err := utils.ParseScheduleDate(request.Date)
	if err != nil {
		return nil, exceptions.ErrScheduleValidation(
			fmt.Sprintf("Invalid date %q. Use YYYY-MM-DD (e.g., 2025-12-07)", request.Date),
			constvars.ErrDevInvalidDateFormat,
		)
	}
	if utils.IsPastDate(parsedDate, time.Now()) {
		return nil, exceptions.ErrScheduleValidation(
			"Cannot add a schedule for a past date. Please select today or a future date",
			constvars.ErrDevDateInPast,
		)
	}

	newSlots := make([]models.Slot, 0, len(request.TimeSlots))
	for _, slot := range request.TimeSlots {
		if !utils.IsValidClockTime(slot.From) || !utils.IsValidClockTime(slot.To) {
			return nil, exceptions.ErrScheduleValidation(
				fmt.Sprintf("Invalid time format in slot %s-%s", slot.From, slot.To),
				constvars.ErrDevInvalidTimeFormat,
			)
		}
		if utils.ClockTimeToMinutes(slot.To) <= utils.ClockTimeToMinutes(slot.From) {
			return nil, exceptions.ErrScheduleValidation(
				fmt.Sprintf("Invalid slot %s-%s: end must be after start", slot.From, slot.To),
				constvars.ErrDevSlotEndNotAfterStart,
			)
		}
		newSlots = append(newSlots, models.Slot{
			ID:     utils.GenerateSlotID(),
			From:   slot.From,
			To:     slot.To,
			Status: models.SlotStatusOpen,
		})
	}

	// Overlap and duplicate checks run within the request first, then against
	// whatever is already stored for this practitioner/date.
	if err := validateNoOverlap(newSlots, nil); err != nil {
		return nil, err
	}

	existing, err := uc.ScheduleRepository.FindByPractitionerAndDate(ctx, practitionerID, request.Date)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if err := validateNoOverlap(newSlots, existing.TimeSlots); err != nil {
			return nil, err
		}
		if err := uc.ScheduleRepository.AppendSlots(ctx, existing.ID.Hex(), newSlots); err != nil {
			return nil, err
		}
		existing.TimeSlots = append(existing.TimeSlots, newSlots...)
		return existing, nil
	}

	schedule := &models.PractitionerSchedule{
		PractitionerID: practitionerID,
		Date:           request.Date,
		TimeSlots:      newSlots,
	}
	return uc.ScheduleRepository.CreateSchedule(ctx, schedule)
}

// validateNoOverlap rejects duplicates and any pairwise interval overlap,
// both among candidates and between candidates and stored slots.
func validateNoOverlap(candidates, stored []models.Slot) error {
	type span struct {
		from, to int
		label    string
	}

	seen := make(map[string]bool, len(candidates))
	spans := make([]span, 0, len(candidates)+len(stored))

	for _, slot := range stored {
		spans = append(spans, span{
			from:  utils.ClockTimeToMinutes(slot.From),
			to:    utils.ClockTimeToMinutes(slot.To),
			label: fmt.Sprintf("%s-%s", slot.From, slot.To),
		})
	}

	for _, slot := range candidates {
		key := fmt.Sprintf("%s-%s", slot.From, slot.To)
		if seen[key] {
			return exceptions.ErrScheduleValidation(
				fmt.Sprintf("Duplicate time slot detected in request: %s", key),
				constvars.ErrDevDuplicateSlotInRequest,
			)
		}
		seen[key] = true

		candidate := span{
			from:  utils.ClockTimeToMinutes(slot.From),
			to:    utils.ClockTimeToMinutes(slot.To),
			label: key,
		}
		for _, other := range spans {
			if utils.RangesOverlap(candidate.from, candidate.to, other.from, other.to) {
				return exceptions.ErrScheduleValidation(
					fmt.Sprintf("Time slot %s overlaps existing slot %s", candidate.label, other.label),
					constvars.ErrDevOverlappingSlot,
				)
			}
		}
		spans = append(spans, candidate)
	}
	return nil
}

func (uc *scheduleUsecase) RemoveSlot(ctx context.Context, practitionerID, scheduleID, slotID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.RemoveSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
	)

	schedules, err := uc.ScheduleRepository.FindByPractitioner(ctx, practitionerID)
	if err != nil {
		return err
	}
	owned := false
	for _, schedule := range schedules {
		if schedule.ID.Hex() == scheduleID {
			owned = true
			break
		}
	}
	if !owned {
		return exceptions.ErrNotScheduleOwner(nil)
	}

	removed, err := uc.ScheduleRepository.RemoveOpenSlot(ctx, scheduleID, slotID)
	if err != nil {
		return err
	}
	if !removed {
		// Either the slot does not exist or it is reserved/booked; a slot is
		// only ever removed while open.
		return exceptions.ErrSlotNotFound(nil)
	}
	return nil
}

func (uc *scheduleUsecase) ListForPractitioner(ctx context.Context, practitionerID string) ([]models.PractitionerSchedule, error) {
	return uc.ScheduleRepository.FindByPractitioner(ctx, practitionerID)
}

func (uc *scheduleUsecase) ListForDate(ctx context.Context, date string) ([]models.PractitionerSchedule, error) {
	if _, err := utils.ParseScheduleDate(date); err != nil {
		return nil, exceptions.ErrScheduleValidation(
			fmt.Sprintf("Invalid date %q. Use YYYY-MM-DD", date),
			constvars.ErrDevInvalidDateFormat,
		)
	}
	return uc.ScheduleRepository.FindByDate(ctx, date)
}

func (uc *scheduleUsecase) ListAppointmentsForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	schedules, err := uc.ScheduleRepository.FindByBookedPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return collectAppointments(schedules, func(slot models.Slot) bool {
		return slot.Status == models.SlotStatusBooked && slot.BookedBy == patientID
	}), nil
}

func (uc *scheduleUsecase) ListAppointmentsForPractitioner(ctx context.Context, practitionerID string) ([]models.Appointment, error) {
	schedules, err := uc.ScheduleRepository.FindByPractitioner(ctx, practitionerID)
	if err != nil {
		return nil, err
	}
	return collectAppointments(schedules, func(slot models.Slot) bool {
		return slot.Status == models.SlotStatusBooked
	}), nil
}

func collectAppointments(schedules []models.PractitionerSchedule, keep func(models.Slot) bool) []models.Appointment {
	appointments := []models.Appointment{}
	for _, schedule := range schedules {
		for _, slot := range schedule.TimeSlots {
			if !keep(slot) {
				continue
			}
			appointments = append(appointments, models.Appointment{
				ScheduleID:     schedule.ID.Hex(),
				PractitionerID: schedule.PractitionerID,
				Date:           schedule.Date,
				SlotID:         slot.ID,
				From:           slot.From,
				To:             slot.To,
				BookedBy:       slot.BookedBy,
				Price:          slot.Price,
			})
		}
	}
	return appointments
}
