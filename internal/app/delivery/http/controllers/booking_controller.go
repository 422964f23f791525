package controllers

import (
	"flexera-service/internal/app/contracts"
	"flexera-service/internal/pkg/constvars"
	"flexera-service/internal/pkg/dto/requests"
	"flexera-service/internal/pkg/exceptions"
	"flexera-service/internal/pkg/utils"
	"net/http"
	"sync"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type BookingController struct {
	Usecase contracts.BookingUsecase
	Log     *zap.Logger
}

var (
	bookingControllerInstance *BookingController
	onceBookingController     sync.Once
)

func NewBookingController(usecase contracts.BookingUsecase, logger *zap.Logger) *BookingController {
	onceBookingController.Do(func() {
		bookingControllerInstance = &BookingController{
			Usecase: usecase,
			Log:     logger,
		}
	})
	return bookingControllerInstance
}

// InitiateBooking handles POST /booking-intent: it reserves the slot and
// returns the hosted checkout URL the patient is redirected to.
func (c *BookingController) InitiateBooking(w http.ResponseWriter, r *http.Request) {
	var request requests.BookingIntent
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(&request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	initiator := initiatorFromContext(r)

	response, err := c.Usecase.InitiateBookingPayment(r.Context(), initiator, &request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ResponsePaymentInitiated, response)
}

// CancelBooking handles POST /appointments/cancel for the owning patient.
func (c *BookingController) CancelBooking(w http.ResponseWriter, r *http.Request) {
	var request requests.CancelBooking
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(&request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	patientID, _ := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)

	if err := c.Usecase.CancelBooking(r.Context(), patientID, &request); err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseBookingCancelled, nil)
}

func initiatorFromContext(r *http.Request) contracts.BookingInitiator {
	patientID, _ := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)
	initiator := contracts.BookingInitiator{PatientID: patientID}

	if claims, ok := r.Context().Value(constvars.CONTEXT_USER_CLAIMS_KEY).(*utils.UserClaims); ok {
		initiator.Name = claims.Name
		initiator.Email = claims.Email
		initiator.Phone = claims.Phone
	}
	return initiator
}
