package routers

import (
	"flexera-service/internal/app/delivery/http/controllers"
	"flexera-service/internal/app/delivery/http/middlewares"
	"flexera-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachBookingRoutes(router chi.Router, m *middlewares.Middlewares, c *controllers.BookingController) {
	router.Group(func(r chi.Router) {
		r.Use(m.Authentication)
		r.Use(m.RequireRole(constvars.RolePatient))
		r.Post("/booking-intent", c.InitiateBooking)
	})
}

func attachAppointmentRoutes(router chi.Router, m *middlewares.Middlewares, scheduleCtrl *controllers.ScheduleController, bookingCtrl *controllers.BookingController) {
	router.Use(m.Authentication)

	router.Get("/", scheduleCtrl.ListAppointments)
	router.With(m.RequireRole(constvars.RolePractitioner)).Get("/practitioner", scheduleCtrl.ListAppointments)

	router.Group(func(r chi.Router) {
		r.Use(m.RequireRole(constvars.RolePatient))
		r.Post("/cancel", bookingCtrl.CancelBooking)
	})
}
