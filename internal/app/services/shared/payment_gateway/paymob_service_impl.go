package payment_gateway

import (
	"bytes"
	"context"
	"flexera-service/internal/app/config"
	"flexera-service/internal/app/contracts"
	"flexera-service/internal/pkg/constvars"
	"flexera-service/internal/pkg/dto/requests"
	"flexera-service/internal/pkg/dto/responses"
	"flexera-service/internal/pkg/exceptions"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	paymobServiceInstance contracts.PaymentGatewayService
	oncePaymobService     sync.Once
)

type paymobService struct {
	BaseUrl       string
	ApiKey        string
	IntegrationID string
	IframeBaseUrl string
	IframeID      string
	Currency      string
	httpClient    *http.Client
	redisRepo     contracts.RedisRepository
	Log           *zap.Logger
}

func NewPaymobService(internalConfig *config.InternalConfig, redisRepo contracts.RedisRepository, logger *zap.Logger) contracts.PaymentGatewayService {
	oncePaymobService.Do(func() {
		paymobServiceInstance = &paymobService{
			BaseUrl:       internalConfig.PaymentGateway.BaseUrl,
			ApiKey:        internalConfig.PaymentGateway.ApiKey,
			IntegrationID: internalConfig.PaymentGateway.IntegrationID,
			IframeBaseUrl: internalConfig.PaymentGateway.IframeBaseUrl,
			IframeID:      internalConfig.PaymentGateway.IframeID,
			Currency:      internalConfig.PaymentGateway.Currency,
			httpClient:    &http.Client{Timeout: 30 * time.Second},
			redisRepo:     redisRepo,
			Log:           logger,
		}
	})
	return paymobServiceInstance
}

// Authenticate returns a provider auth token, reusing the cached one while it
// is still valid.
func (s *paymobService) Authenticate(ctx context.Context) (string, error) {
	cached, err := s.redisRepo.Get(ctx, constvars.RedisKeyPaymobAuthToken)
	if err == nil && cached != "" {
		var token string
		if err := json.Unmarshal([]byte(cached), &token); err == nil && token != "" {
			return token, nil
		}
	}

	var authResponse responses.PaymobAuthResponse
	err = s.postJSON(ctx, constvars.PaymobAuthTokenPath, requests.PaymobAuthRequest{APIKey: s.ApiKey}, &authResponse)
	if err != nil {
		return "", exceptions.ErrPaymentGateway(err, constvars.ErrDevPaymobAuth)
	}

	cacheTTL := time.Duration(constvars.PaymobAuthTokenCacheMinutes) * time.Minute
	if cacheErr := s.redisRepo.Set(ctx, constvars.RedisKeyPaymobAuthToken, authResponse.Token, cacheTTL); cacheErr != nil {
		s.Log.Warn("paymobService.Authenticate failed to cache auth token", zap.Error(cacheErr))
	}

	return authResponse.Token, nil
}

func (s *paymobService) CreateOrder(ctx context.Context, authToken string, amountCents int64, merchantReference string) (*contracts.PaymentOrder, error) {
	request := requests.PaymobOrderRequest{
		AuthToken:       authToken,
		DeliveryNeeded:  false,
		AmountCents:     amountCents,
		Currency:        s.Currency,
		MerchantOrderID: merchantReference,
		Items:           []interface{}{},
	}

	var orderResponse responses.PaymobOrderResponse
	err := s.postJSON(ctx, constvars.PaymobOrdersPath, request, &orderResponse)
	if err != nil {
		return nil, exceptions.ErrPaymentGateway(err, constvars.ErrDevPaymobCreateOrder)
	}

	s.Log.Info("paymobService.CreateOrder registered order",
		zap.Int64("provider_order_id", orderResponse.ID),
		zap.Int64(constvars.LoggingAmountCentsKey, amountCents),
		zap.String(constvars.LoggingMerchantRefKey, merchantReference),
	)

	// Order ids are carried as strings everywhere downstream so webhook
	// correlation never depends on the provider's numeric representation.
	return &contracts.PaymentOrder{
		ID:          strconv.FormatInt(orderResponse.ID, 10),
		AmountCents: amountCents,
		Currency:    s.Currency,
	}, nil
}

func (s *paymobService) CreatePaymentKey(ctx context.Context, authToken string, order *contracts.PaymentOrder, billing requests.PaymobBillingData) (string, error) {
	providerOrderID, err := strconv.ParseInt(order.ID, 10, 64)
	if err != nil {
		return "", exceptions.ErrPaymentGateway(err, constvars.ErrDevPaymobPaymentKey)
	}

	request := requests.PaymobPaymentKeyRequest{
		AuthToken:     authToken,
		AmountCents:   order.AmountCents,
		Expiration:    constvars.PaymobPaymentKeyExpirationSeconds,
		OrderID:       providerOrderID,
		BillingData:   billing,
		Currency:      order.Currency,
		IntegrationID: s.IntegrationID,
	}

	var keyResponse responses.PaymobPaymentKeyResponse
	err = s.postJSON(ctx, constvars.PaymobPaymentKeyPath, request, &keyResponse)
	if err != nil {
		return "", exceptions.ErrPaymentGateway(err, constvars.ErrDevPaymobPaymentKey)
	}
	return keyResponse.Token, nil
}

func (s *paymobService) CheckoutURL(paymentKey string) string {
	base := strings.TrimSuffix(s.IframeBaseUrl, "/")
	return fmt.Sprintf("%s/%s?payment_token=%s", base, s.IframeID, paymentKey)
}

func (s *paymobService) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseUrl+path, bytes.NewReader(body))
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}
	httpRequest.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	httpResponse, err := s.httpClient.Do(httpRequest)
	if err != nil {
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode > 299 {
		return exceptions.WrapWithoutError(
			constvars.StatusBadGateway,
			constvars.ErrClientPaymentInitFailed,
			fmt.Sprintf("%s: %s returned %d", constvars.ErrDevPaymobBadStatus, path, httpResponse.StatusCode),
		)
	}

	if err := json.NewDecoder(httpResponse.Body).Decode(out); err != nil {
		return exceptions.ErrDecodeResponse(err)
	}
	return nil
}
