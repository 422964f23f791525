package routers

import (
	"flexera-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

// Webhook routes are unauthenticated: the provider proves itself through the
// HMAC embedded in the payload, not through a bearer token.
func attachWebhookRoutes(router chi.Router, c *controllers.WebhookController) {
	router.Post("/payment-webhook", c.HandlePaymentCallback)
	router.Get("/payment-webhook", c.HandlePaymentLanding)
}
