package requests

type PaymobAuthRequest struct {
	APIKey string `json:"api_key"`
}

type PaymobOrderRequest struct {
	AuthToken       string        `json:"auth_token"`
	DeliveryNeeded  bool          `json:"delivery_needed"`
	AmountCents     int64         `json:"amount_cents"`
	Currency        string        `json:"currency"`
	MerchantOrderID string        `json:"merchant_order_id"`
	Items           []interface{} `json:"items"`
}

type PaymobBillingData struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	Apartment      string `json:"apartment"`
	Floor          string `json:"floor"`
	Street         string `json:"street"`
	Building       string `json:"building"`
	ShippingMethod string `json:"shipping_method"`
	PostalCode     string `json:"postal_code"`
	City           string `json:"city"`
	Country        string `json:"country"`
	State          string `json:"state"`
}

// NewPaymobBillingData fills the provider-mandated address fields with the
// placeholder it accepts for card-not-present flows.
func NewPaymobBillingData(name, email, phone string) PaymobBillingData {
	if phone == "" {
		phone = "01200000000"
	}
	return PaymobBillingData{
		FirstName:      name,
		LastName:       name,
		Email:          email,
		PhoneNumber:    phone,
		Apartment:      "NA",
		Floor:          "NA",
		Street:         "NA",
		Building:       "NA",
		ShippingMethod: "NA",
		PostalCode:     "NA",
		City:           "NA",
		Country:        "EG",
		State:          "NA",
	}
}

type PaymobPaymentKeyRequest struct {
	AuthToken     string            `json:"auth_token"`
	AmountCents   int64             `json:"amount_cents"`
	Expiration    int               `json:"expiration"`
	OrderID       int64             `json:"order_id"`
	BillingData   PaymobBillingData `json:"billing_data"`
	Currency      string            `json:"currency"`
	IntegrationID string            `json:"integration_id"`
}
