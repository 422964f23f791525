package contracts

import (
	"context"
	"flexera-service/internal/pkg/dto/requests"
)

type PaymentOrder struct {
	ID          string
	AmountCents int64
	Currency    string
}

// PaymentGatewayService talks to the external payment provider.
type PaymentGatewayService interface {
	Authenticate(ctx context.Context) (string, error)
	CreateOrder(ctx context.Context, authToken string, amountCents int64, merchantReference string) (*PaymentOrder, error)
	CreatePaymentKey(ctx context.Context, authToken string, order *PaymentOrder, billing requests.PaymobBillingData) (string, error)
	// CheckoutURL builds the hosted checkout redirect URL embedding the
	// payment key.
	CheckoutURL(paymentKey string) string
}
