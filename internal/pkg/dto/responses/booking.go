package responses

type BookingIntentResponse struct {
	PaymentURL   string  `json:"payment_url"`
	PaymentToken string  `json:"payment_token"`
	OrderID      string  `json:"order_id"`
	Price        float64 `json:"price"`
}
