package webhook

import (
	"context"
	"flexera-service/internal/app/config"
	"flexera-service/internal/app/contracts"
	"flexera-service/internal/pkg/constvars"
	"math"
	"strconv"
	"sync"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type webhookUsecase struct {
	SlotUsecase    contracts.SlotUsecase
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

var (
	webhookUsecaseInstance contracts.WebhookUsecase
	onceWebhookUsecase     sync.Once
)

func NewWebhookUsecase(
	slotUsecase contracts.SlotUsecase,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.WebhookUsecase {
	onceWebhookUsecase.Do(func() {
		webhookUsecaseInstance = &webhookUsecase{
			SlotUsecase:    slotUsecase,
			InternalConfig: internalConfig,
			Log:            logger,
		}
	})
	return webhookUsecaseInstance
}

// Handle verifies and applies one provider callback. The conversation with
// the provider is already over by the time this runs, so nothing here may
// fail outward: a bad payload is logged and dropped, never retried by us.
func (uc *webhookUsecase) Handle(ctx context.Context, rawPayload []byte) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	var payload map[string]interface{}
	if err := json.Unmarshal(rawPayload, &payload); err != nil {
		uc.Log.Warn("webhookUsecase.Handle dropped malformed payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}

	if !verifySignature(payload, uc.InternalConfig.PaymentGateway.HmacSecret) {
		uc.Log.Error("webhookUsecase.Handle rejected payload with bad signature",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("reason", constvars.ErrDevWebhookSignatureMismatch),
		)
		return
	}

	// Some callback shapes wrap the transaction under an "obj" envelope.
	data := payload
	if wrapped, ok := payload["obj"].(map[string]interface{}); ok {
		data = wrapped
	}

	orderID := extractOrderID(data)
	if orderID == "" {
		uc.Log.Warn("webhookUsecase.Handle dropped payload without order id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return
	}
	success := extractSuccess(data)
	transactionID := stringifyIdentifier(data["id"])

	if err := uc.SlotUsecase.Finalize(ctx, orderID, success, transactionID); err != nil {
		uc.Log.Error("webhookUsecase.Handle failed to finalize order",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.Bool("success", success),
			zap.Error(err),
		)
		return
	}

	uc.Log.Info("webhookUsecase.Handle reconciled payment outcome",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
		zap.Bool("success", success),
	)
}

// extractOrderID accepts both the nested {"order":{"id":123}} shape and a
// bare {"order":123} scalar.
func extractOrderID(data map[string]interface{}) string {
	switch order := data["order"].(type) {
	case map[string]interface{}:
		return stringifyIdentifier(order["id"])
	default:
		return stringifyIdentifier(order)
	}
}

// extractSuccess tolerates the provider's habit of sending booleans as the
// strings "true"/"false".
func extractSuccess(data map[string]interface{}) bool {
	switch value := data["success"].(type) {
	case bool:
		return value
	case string:
		parsed, err := strconv.ParseBool(value)
		return err == nil && parsed
	default:
		return false
	}
}

// stringifyIdentifier normalizes numeric and string ids to a canonical
// string form. JSON numbers decode as float64; provider ids fit in int64.
func stringifyIdentifier(value interface{}) string {
	switch typed := value.(type) {
	case string:
		return typed
	case float64:
		if typed == math.Trunc(typed) {
			return strconv.FormatInt(int64(typed), 10)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return ""
	}
}
