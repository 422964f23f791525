package slots

import (
	"context"
	"flexera-service/internal/app/config"
	"flexera-service/internal/app/contracts"
	"flexera-service/internal/app/models"
	"flexera-service/internal/pkg/constvars"
	"flexera-service/internal/pkg/exceptions"
	"sync"
	"time"

	"go.uber.org/zap"
)

type slotUsecase struct {
	ScheduleRepository contracts.ScheduleRepository
	EventPublisher     contracts.EventPublisher
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
}

var (
	slotUsecaseInstance contracts.SlotUsecase
	onceSlotUsecase     sync.Once
)

func NewSlotUsecase(
	scheduleRepository contracts.ScheduleRepository,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.SlotUsecase {
	onceSlotUsecase.Do(func() {
		slotUsecaseInstance = &slotUsecase{
			ScheduleRepository: scheduleRepository,
			EventPublisher:     eventPublisher,
			InternalConfig:     internalConfig,
			Log:                logger,
		}
	})
	return slotUsecaseInstance
}

func (uc *slotUsecase) Reserve(ctx context.Context, practitionerID, date, slotID, patientID string, price float64) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	reserved, err := uc.ScheduleRepository.ReserveSlot(ctx, practitionerID, date, slotID, patientID, price, time.Now())
	if err != nil {
		return err
	}
	if !reserved {
		uc.Log.Info("slotUsecase.Reserve lost reservation race",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotIDKey, slotID),
			zap.String(constvars.LoggingPatientKey, patientID),
		)
		return exceptions.ErrSlotUnavailable(nil)
	}

	uc.Log.Info("slotUsecase.Reserve reserved slot",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
		zap.String(constvars.LoggingPatientKey, patientID),
	)
	return nil
}

func (uc *slotUsecase) AttachOrder(ctx context.Context, slotID, orderID string) error {
	attached, err := uc.ScheduleRepository.AttachOrder(ctx, slotID, orderID)
	if err != nil {
		return err
	}
	if !attached {
		// The reservation is gone, most likely expired between reserve and
		// order creation.
		return exceptions.ErrSlotUnavailable(nil)
	}
	return nil
}

// Finalize drives the terminal transition for an order. Every branch below is
// either a guarded conditional update or a no-op, so replays and races with
// the expiry sweep cannot double-apply.
func (uc *slotUsecase) Finalize(ctx context.Context, orderID string, success bool, transactionID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	schedule, slot, err := uc.ScheduleRepository.FindSlotByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if slot == nil {
		return exceptions.ErrOrderNotFound(nil)
	}

	if slot.Status == models.SlotStatusBooked && slot.TransactionID == transactionID {
		uc.Log.Info("slotUsecase.Finalize replay for already-booked slot, no-op",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.String(constvars.LoggingTransactionIDKey, transactionID),
		)
		return nil
	}

	if success && slot.Status == models.SlotStatusPendingPayment {
		booked, err := uc.ScheduleRepository.BookSlotByOrder(ctx, orderID, transactionID)
		if err != nil {
			return err
		}
		if !booked {
			// Lost the race against the expiry sweep; the winning operation
			// already decided the slot's state.
			uc.Log.Warn("slotUsecase.Finalize success outcome lost conditional update",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingOrderIDKey, orderID),
			)
			return nil
		}

		uc.Log.Info("slotUsecase.Finalize booked slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.String(constvars.LoggingTransactionIDKey, transactionID),
		)
		uc.publishEvent(ctx, contracts.EventBookingConfirmed, schedule, slot, orderID, transactionID)
		return nil
	}

	// Failure outcome, or the slot is no longer pending: make sure it ends up
	// open with owner, order id and transaction id cleared.
	released, err := uc.ScheduleRepository.ReleaseSlotByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if released {
		uc.Log.Info("slotUsecase.Finalize released slot after failed payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, orderID),
		)
		uc.publishEvent(ctx, contracts.EventReservationReleased, schedule, slot, orderID, "")
	}
	return nil
}

func (uc *slotUsecase) Release(ctx context.Context, slotID string) error {
	released, err := uc.ScheduleRepository.ReleaseSlotByID(ctx, slotID)
	if err != nil {
		return err
	}
	if !released {
		uc.Log.Warn("slotUsecase.Release found no pending slot to release",
			zap.String(constvars.LoggingSlotIDKey, slotID),
		)
	}
	return nil
}

func (uc *slotUsecase) ReleaseByCancellation(ctx context.Context, scheduleID, slotID, patientID string) error {
	released, err := uc.ScheduleRepository.ReleaseBookedSlot(ctx, scheduleID, slotID, patientID)
	if err != nil {
		return err
	}
	if !released {
		return exceptions.ErrSlotNotFound(nil)
	}
	return nil
}

func (uc *slotUsecase) ExpireStalePending(ctx context.Context) (int64, error) {
	ttl := time.Duration(uc.InternalConfig.Booking.ReservationTTLMinutes) * time.Minute
	cutoff := time.Now().Add(-ttl)

	expired, err := uc.ScheduleRepository.ExpireStalePending(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		uc.Log.Info("slotUsecase.ExpireStalePending released stale reservations",
			zap.Int64(constvars.LoggingExpiredCountKey, expired),
		)
	}
	return expired, nil
}

func (uc *slotUsecase) publishEvent(ctx context.Context, eventType string, schedule *models.PractitionerSchedule, slot *models.Slot, orderID, transactionID string) {
	if uc.EventPublisher == nil {
		return
	}
	event := &contracts.BookingEvent{
		Type:           eventType,
		ScheduleID:     schedule.ID.Hex(),
		SlotID:         slot.ID,
		PractitionerID: schedule.PractitionerID,
		PatientID:      slot.BookedBy,
		OrderID:        orderID,
		TransactionID:  transactionID,
		Date:           schedule.Date,
		From:           slot.From,
		To:             slot.To,
	}
	if err := uc.EventPublisher.PublishBookingEvent(ctx, event); err != nil {
		// Event delivery is best-effort; booking state is already final.
		uc.Log.Error("slotUsecase.publishEvent failed",
			zap.String(constvars.LoggingEventTypeKey, eventType),
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.Error(err),
		)
	}
}
