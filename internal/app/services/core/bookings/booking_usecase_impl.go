package bookings

import (
	"context"
	"flexera-service/internal/app/contracts"
	"flexera-service/internal/pkg/constvars"
	"flexera-service/internal/pkg/dto/requests"
	"flexera-service/internal/pkg/dto/responses"
	"flexera-service/internal/pkg/exceptions"
	"flexera-service/internal/pkg/utils"
	"math"
	"sync"

	"go.uber.org/zap"
)

type bookingUsecase struct {
	PractitionerRepository contracts.PractitionerRepository
	SlotUsecase            contracts.SlotUsecase
	PaymentGateway         contracts.PaymentGatewayService
	Log                    *zap.Logger
}

var (
	bookingUsecaseInstance contracts.BookingUsecase
	onceBookingUsecase     sync.Once
)

func NewBookingUsecase(
	practitionerRepository contracts.PractitionerRepository,
	slotUsecase contracts.SlotUsecase,
	paymentGateway contracts.PaymentGatewayService,
	logger *zap.Logger,
) contracts.BookingUsecase {
	onceBookingUsecase.Do(func() {
		bookingUsecaseInstance = &bookingUsecase{
			PractitionerRepository: practitionerRepository,
			SlotUsecase:            slotUsecase,
			PaymentGateway:         paymentGateway,
			Log:                    logger,
		}
	})
	return bookingUsecaseInstance
}

// InitiateBookingPayment reserves the slot first, then registers the payment
// with the provider. Any failure after the reservation releases the slot
// before the error is surfaced, so a failed attempt never strands inventory.
func (uc *bookingUsecase) InitiateBookingPayment(ctx context.Context, initiator contracts.BookingInitiator, request *requests.BookingIntent) (*responses.BookingIntentResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	practitioner, err := uc.PractitionerRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if practitioner == nil {
		return nil, exceptions.ErrPractitionerNotFound(nil)
	}

	price := practitioner.Price
	amountCents := int64(math.Round(price * 100))

	if err := uc.SlotUsecase.Reserve(ctx, request.DoctorID, request.Date, request.SlotID, initiator.PatientID, price); err != nil {
		return nil, err
	}

	response, err := uc.registerPayment(ctx, initiator, request, price, amountCents)
	if err != nil {
		uc.Log.Warn("bookingUsecase.InitiateBookingPayment rolling back reservation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotIDKey, request.SlotID),
			zap.Error(err),
		)
		if releaseErr := uc.SlotUsecase.Release(ctx, request.SlotID); releaseErr != nil {
			uc.Log.Error("bookingUsecase.InitiateBookingPayment compensation failed, sweep will reclaim the slot",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSlotIDKey, request.SlotID),
				zap.Error(releaseErr),
			)
		}
		return nil, err
	}

	uc.Log.Info("bookingUsecase.InitiateBookingPayment payment initiated",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, request.SlotID),
		zap.String(constvars.LoggingOrderIDKey, response.OrderID),
	)
	return response, nil
}

// registerPayment runs the provider leg of the booking: authenticate, create
// an order, pin it to the reserved slot, then mint the payment key.
func (uc *bookingUsecase) registerPayment(ctx context.Context, initiator contracts.BookingInitiator, request *requests.BookingIntent, price float64, amountCents int64) (*responses.BookingIntentResponse, error) {
	authToken, err := uc.PaymentGateway.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	merchantReference := utils.GenerateMerchantReference(initiator.PatientID)
	order, err := uc.PaymentGateway.CreateOrder(ctx, authToken, amountCents, merchantReference)
	if err != nil {
		return nil, err
	}

	// The slot must reference the order before the patient can pay: the
	// webhook reconciles by order id, and an unattached order is untrackable.
	if err := uc.SlotUsecase.AttachOrder(ctx, request.SlotID, order.ID); err != nil {
		return nil, err
	}

	billing := requests.NewPaymobBillingData(initiator.Name, initiator.Email, initiator.Phone)
	paymentKey, err := uc.PaymentGateway.CreatePaymentKey(ctx, authToken, order, billing)
	if err != nil {
		return nil, err
	}

	return &responses.BookingIntentResponse{
		PaymentURL:   uc.PaymentGateway.CheckoutURL(paymentKey),
		PaymentToken: paymentKey,
		OrderID:      order.ID,
		Price:        price,
	}, nil
}

func (uc *bookingUsecase) CancelBooking(ctx context.Context, patientID string, request *requests.CancelBooking) error {
	return uc.SlotUsecase.ReleaseByCancellation(ctx, request.ScheduleID, request.SlotID, patientID)
}
