package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"flexera-service/internal/app/delivery/http/controllers"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockWebhookUsecase struct {
	mock.Mock
}

func (m *MockWebhookUsecase) Handle(ctx context.Context, rawPayload []byte) {
	m.Called(ctx, rawPayload)
}

func TestWebhookRouter_PaymentCallback(t *testing.T) {
	logger := zap.NewNop()

	mockUsecase := new(MockWebhookUsecase)
	webhookController := controllers.NewWebhookController(mockUsecase, logger)

	router := chi.NewRouter()
	attachWebhookRoutes(router, webhookController)

	t.Run("PostAlwaysAcknowledges", func(t *testing.T) {
		mockUsecase.On("Handle", mock.Anything, mock.AnythingOfType("[]uint8")).Return()

		body := bytes.NewBufferString(`{"id":41,"success":true,"order":{"id":77},"hmac":"bad"}`)
		req := httptest.NewRequest(http.MethodPost, "/payment-webhook", body)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		// The provider retries on anything but a success acknowledgement, so
		// even a payload we reject internally gets a 200.
		assert.Equal(t, http.StatusOK, rec.Code)

		var response map[string]bool
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.True(t, response["success"])
		mockUsecase.AssertCalled(t, "Handle", mock.Anything, mock.AnythingOfType("[]uint8"))
	})

	t.Run("GetServesLandingPageWithoutMutation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/payment-webhook?success=true&order=77", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "Thank you")
	})
}
