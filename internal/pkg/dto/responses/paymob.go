package responses

type PaymobAuthResponse struct {
	Token string `json:"token"`
}

type PaymobOrderResponse struct {
	ID int64 `json:"id"`
}

type PaymobPaymentKeyResponse struct {
	Token string `json:"token"`
}
