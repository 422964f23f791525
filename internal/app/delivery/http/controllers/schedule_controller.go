package controllers

import (
	"flexera-service/internal/app/contracts"
	"flexera-service/internal/pkg/constvars"
	"flexera-service/internal/pkg/dto/requests"
	"flexera-service/internal/pkg/exceptions"
	"flexera-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ScheduleController struct {
	Usecase contracts.ScheduleUsecase
	Log     *zap.Logger
}

func NewScheduleController(usecase contracts.ScheduleUsecase, logger *zap.Logger) *ScheduleController {
	return &ScheduleController{
		Usecase: usecase,
		Log:     logger,
	}
}

// AddSchedule handles POST /schedules for the authenticated practitioner.
func (c *ScheduleController) AddSchedule(w http.ResponseWriter, r *http.Request) {
	var request requests.AddSchedule
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(&request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	practitionerID, _ := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)

	schedule, err := c.Usecase.AddSlots(r.Context(), practitionerID, &request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ResponseScheduleCreated, schedule)
}

// ListSchedules handles GET /schedules. With ?doctorId= any authenticated
// caller can browse that practitioner's availability; without it the caller
// must be a practitioner and gets their own schedules.
func (c *ScheduleController) ListSchedules(w http.ResponseWriter, r *http.Request) {
	practitionerID := r.URL.Query().Get("doctorId")
	if practitionerID == "" {
		role, _ := r.Context().Value(constvars.CONTEXT_USER_ROLE_KEY).(string)
		if role != constvars.RolePractitioner {
			utils.BuildErrorResponse(c.Log, w, exceptions.ErrRoleNotAllowed(nil))
			return
		}
		practitionerID, _ = r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)
	}

	schedules, err := c.Usecase.ListForPractitioner(r.Context(), practitionerID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseScheduleFetched, schedules)
}

// ListSchedulesByDate handles GET /schedules/date/{date} for patients
// browsing availability.
func (c *ScheduleController) ListSchedulesByDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := utils.ParseScheduleDate(date); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrScheduleValidation(constvars.ErrClientCannotProcessRequest, constvars.ErrDevInvalidDateFormat))
		return
	}

	schedules, err := c.Usecase.ListForDate(r.Context(), date)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseScheduleFetched, schedules)
}

// RemoveSlot handles DELETE /schedules/{scheduleID}/slots/{slotID}. Only
// open slots owned by the caller can be removed.
func (c *ScheduleController) RemoveSlot(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "scheduleID")
	slotID := chi.URLParam(r, "slotID")
	practitionerID, _ := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)

	if err := c.Usecase.RemoveSlot(r.Context(), practitionerID, scheduleID, slotID); err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSlotRemoved, nil)
}

// ListAppointments handles GET /appointments for both roles: patients see
// their booked slots, practitioners their booked schedule entries.
func (c *ScheduleController) ListAppointments(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)
	role, _ := r.Context().Value(constvars.CONTEXT_USER_ROLE_KEY).(string)

	var (
		appointments interface{}
		err          error
	)
	switch role {
	case constvars.RolePractitioner:
		appointments, err = c.Usecase.ListAppointmentsForPractitioner(r.Context(), userID)
	default:
		appointments, err = c.Usecase.ListAppointmentsForPatient(r.Context(), userID)
	}
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseAppointmentsFetched, appointments)
}
