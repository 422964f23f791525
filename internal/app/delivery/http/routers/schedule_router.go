package routers

import (
	"flexera-service/internal/app/delivery/http/controllers"
	"flexera-service/internal/app/delivery/http/middlewares"
	"flexera-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachScheduleRoutes(router chi.Router, m *middlewares.Middlewares, c *controllers.ScheduleController) {
	router.Use(m.Authentication)

	// Availability browsing is open to any authenticated caller.
	router.Get("/", c.ListSchedules)
	router.Get("/date/{date}", c.ListSchedulesByDate)

	router.Group(func(r chi.Router) {
		r.Use(m.RequireRole(constvars.RolePractitioner))
		r.Post("/", c.AddSchedule)
		r.Delete("/{scheduleID}/slots/{slotID}", c.RemoveSlot)
	})
}
