package controllers

import (
	"flexera-service/internal/app/contracts"
	"flexera-service/internal/pkg/constvars"
	"io"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

type WebhookController struct {
	Usecase contracts.WebhookUsecase
	Log     *zap.Logger
}

var (
	webhookControllerInstance *WebhookController
	onceWebhookController     sync.Once
)

func NewWebhookController(usecase contracts.WebhookUsecase, logger *zap.Logger) *WebhookController {
	onceWebhookController.Do(func() {
		webhookControllerInstance = &WebhookController{
			Usecase: usecase,
			Log:     logger,
		}
	})
	return webhookControllerInstance
}

// HandlePaymentCallback processes POST /payment/webhook. The provider only
// cares that we acknowledge receipt; reconciliation outcomes never change
// the response, otherwise the provider would retry payloads we have already
// rejected for good reason.
func (c *WebhookController) HandlePaymentCallback(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		c.Log.Warn("webhook: failed to read callback body", zap.Error(err))
		c.acknowledge(w)
		return
	}
	defer r.Body.Close()

	c.Usecase.Handle(r.Context(), raw)
	c.acknowledge(w)
}

func (c *WebhookController) acknowledge(w http.ResponseWriter) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(constvars.StatusOK)
	w.Write([]byte(`{"success":true}`))
}

// HandlePaymentLanding serves GET /payment/webhook, where the provider
// redirects the patient's browser after checkout. It renders a static page
// and never mutates state: the POST callback is the source of truth.
func (c *WebhookController) HandlePaymentLanding(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMETextHTMLCharsetUTF8)
	w.WriteHeader(constvars.StatusOK)
	w.Write([]byte(paymentLandingPage))
}

const paymentLandingPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Payment received</title>
</head>
<body>
  <h1>Thank you</h1>
  <p>Your payment is being processed. You will receive a confirmation shortly.</p>
</body>
</html>`
