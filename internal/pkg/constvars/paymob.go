package constvars

const (
	PaymobAuthTokenPath  = "/auth/tokens"
	PaymobOrdersPath     = "/ecommerce/orders"
	PaymobPaymentKeyPath = "/acceptance/payment_keys"

	// Paymob auth tokens live for one hour; the cache keeps a safety margin.
	PaymobAuthTokenCacheMinutes = 50

	PaymobPaymentKeyExpirationSeconds = 3600

	// PaymobSignatureField is the payload field carrying the provider HMAC.
	// It is excluded from the signature computation itself.
	PaymobSignatureField = "hmac"
)
