package webhook

import (
	"context"
	"flexera-service/internal/app/config"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "whk-secret"

type MockSlotUsecase struct {
	mock.Mock
}

func (m *MockSlotUsecase) Reserve(ctx context.Context, practitionerID, date, slotID, patientID string, price float64) error {
	args := m.Called(ctx, practitionerID, date, slotID, patientID, price)
	return args.Error(0)
}

func (m *MockSlotUsecase) AttachOrder(ctx context.Context, slotID, orderID string) error {
	args := m.Called(ctx, slotID, orderID)
	return args.Error(0)
}

func (m *MockSlotUsecase) Finalize(ctx context.Context, orderID string, success bool, transactionID string) error {
	args := m.Called(ctx, orderID, success, transactionID)
	return args.Error(0)
}

func (m *MockSlotUsecase) Release(ctx context.Context, slotID string) error {
	args := m.Called(ctx, slotID)
	return args.Error(0)
}

func (m *MockSlotUsecase) ReleaseByCancellation(ctx context.Context, scheduleID, slotID, patientID string) error {
	args := m.Called(ctx, scheduleID, slotID, patientID)
	return args.Error(0)
}

func (m *MockSlotUsecase) ExpireStalePending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestWebhookUsecase(slotUC *MockSlotUsecase) *webhookUsecase {
	cfg := &config.InternalConfig{}
	cfg.PaymentGateway.HmacSecret = testSecret
	return &webhookUsecase{
		SlotUsecase:    slotUC,
		InternalConfig: cfg,
		Log:            zap.NewNop(),
	}
}

// signPayload embeds a valid hmac field the way the provider would.
func signPayload(t *testing.T, payload map[string]interface{}) []byte {
	t.Helper()
	payload["hmac"] = computeSignature(payload, testSecret)
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return raw
}

func TestComputeSignature(t *testing.T) {
	payload := map[string]interface{}{
		"id":      float64(41),
		"success": true,
		"order":   map[string]interface{}{"id": float64(77)},
	}

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, computeSignature(payload, testSecret), computeSignature(payload, testSecret))
	})

	t.Run("SensitiveToValues", func(t *testing.T) {
		tampered := map[string]interface{}{
			"id":      float64(41),
			"success": false,
			"order":   map[string]interface{}{"id": float64(77)},
		}
		assert.NotEqual(t, computeSignature(payload, testSecret), computeSignature(tampered, testSecret))
	})

	t.Run("SensitiveToSecret", func(t *testing.T) {
		assert.NotEqual(t, computeSignature(payload, testSecret), computeSignature(payload, "other-secret"))
	})

	t.Run("SignatureFieldIsExcluded", func(t *testing.T) {
		withSignature := map[string]interface{}{
			"id":   float64(41),
			"hmac": "deadbeef",
		}
		withoutSignature := map[string]interface{}{
			"id": float64(41),
		}
		assert.Equal(t, computeSignature(withoutSignature, testSecret), computeSignature(withSignature, testSecret))
	})
}

func TestVerifySignature(t *testing.T) {
	t.Run("AcceptsValid", func(t *testing.T) {
		payload := map[string]interface{}{"id": float64(41), "success": true}
		payload["hmac"] = computeSignature(payload, testSecret)
		assert.True(t, verifySignature(payload, testSecret))
	})

	t.Run("RejectsTampered", func(t *testing.T) {
		payload := map[string]interface{}{"id": float64(41), "success": false}
		payload["hmac"] = computeSignature(payload, testSecret)
		payload["success"] = true
		assert.False(t, verifySignature(payload, testSecret))
	})

	t.Run("RejectsMissingSignature", func(t *testing.T) {
		assert.False(t, verifySignature(map[string]interface{}{"id": float64(41)}, testSecret))
	})
}

func TestWebhookUsecase_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessOutcomeFinalizes", func(t *testing.T) {
		slotUC := new(MockSlotUsecase)
		slotUC.On("Finalize", mock.Anything, "77", true, "41").Return(nil)

		raw := signPayload(t, map[string]interface{}{
			"id":      float64(41),
			"success": true,
			"order":   map[string]interface{}{"id": float64(77)},
		})

		uc := newTestWebhookUsecase(slotUC)
		uc.Handle(ctx, raw)

		slotUC.AssertExpectations(t)
	})

	t.Run("FailureOutcomeFinalizes", func(t *testing.T) {
		slotUC := new(MockSlotUsecase)
		slotUC.On("Finalize", mock.Anything, "77", false, "41").Return(nil)

		raw := signPayload(t, map[string]interface{}{
			"id":      float64(41),
			"success": false,
			"order":   map[string]interface{}{"id": float64(77)},
		})

		uc := newTestWebhookUsecase(slotUC)
		uc.Handle(ctx, raw)

		slotUC.AssertExpectations(t)
	})

	t.Run("StringSuccessIsTolerated", func(t *testing.T) {
		slotUC := new(MockSlotUsecase)
		slotUC.On("Finalize", mock.Anything, "77", true, "41").Return(nil)

		raw := signPayload(t, map[string]interface{}{
			"id":      float64(41),
			"success": "true",
			"order":   map[string]interface{}{"id": float64(77)},
		})

		uc := newTestWebhookUsecase(slotUC)
		uc.Handle(ctx, raw)

		slotUC.AssertExpectations(t)
	})

	t.Run("WrappedEnvelopeIsUnpacked", func(t *testing.T) {
		slotUC := new(MockSlotUsecase)
		slotUC.On("Finalize", mock.Anything, "77", true, "41").Return(nil)

		raw := signPayload(t, map[string]interface{}{
			"type": "TRANSACTION",
			"obj": map[string]interface{}{
				"id":      float64(41),
				"success": true,
				"order":   map[string]interface{}{"id": float64(77)},
			},
		})

		uc := newTestWebhookUsecase(slotUC)
		uc.Handle(ctx, raw)

		slotUC.AssertExpectations(t)
	})

	t.Run("ScalarOrderIsTolerated", func(t *testing.T) {
		slotUC := new(MockSlotUsecase)
		slotUC.On("Finalize", mock.Anything, "77", true, "41").Return(nil)

		raw := signPayload(t, map[string]interface{}{
			"id":      float64(41),
			"success": true,
			"order":   float64(77),
		})

		uc := newTestWebhookUsecase(slotUC)
		uc.Handle(ctx, raw)

		slotUC.AssertExpectations(t)
	})

	t.Run("BadSignatureNeverMutates", func(t *testing.T) {
		slotUC := new(MockSlotUsecase)

		payload := map[string]interface{}{
			"id":      float64(41),
			"success": true,
			"order":   map[string]interface{}{"id": float64(77)},
			"hmac":    "0000000000000000",
		}
		raw, err := json.Marshal(payload)
		require.NoError(t, err)

		uc := newTestWebhookUsecase(slotUC)
		uc.Handle(ctx, raw)

		slotUC.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("TamperedPayloadNeverMutates", func(t *testing.T) {
		slotUC := new(MockSlotUsecase)

		payload := map[string]interface{}{
			"id":      float64(41),
			"success": false,
			"order":   map[string]interface{}{"id": float64(77)},
		}
		payload["hmac"] = computeSignature(payload, testSecret)
		// Flip the outcome after signing, as an attacker forcing a free
		// booking would.
		payload["success"] = true
		raw, err := json.Marshal(payload)
		require.NoError(t, err)

		uc := newTestWebhookUsecase(slotUC)
		uc.Handle(ctx, raw)

		slotUC.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MalformedJSONIsDropped", func(t *testing.T) {
		slotUC := new(MockSlotUsecase)

		uc := newTestWebhookUsecase(slotUC)
		uc.Handle(ctx, []byte("{not json"))

		slotUC.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingOrderIsDropped", func(t *testing.T) {
		slotUC := new(MockSlotUsecase)

		raw := signPayload(t, map[string]interface{}{
			"id":      float64(41),
			"success": true,
		})

		uc := newTestWebhookUsecase(slotUC)
		uc.Handle(ctx, raw)

		slotUC.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("FinalizeErrorIsSwallowed", func(t *testing.T) {
		slotUC := new(MockSlotUsecase)
		slotUC.On("Finalize", mock.Anything, "77", true, "41").
			Return(assert.AnError)

		raw := signPayload(t, map[string]interface{}{
			"id":      float64(41),
			"success": true,
			"order":   map[string]interface{}{"id": float64(77)},
		})

		uc := newTestWebhookUsecase(slotUC)
		// Handle has no error return; a reconciliation failure must not panic
		// or propagate.
		uc.Handle(ctx, raw)

		slotUC.AssertExpectations(t)
	})
}
