package constvars

const (
	LoggingRequestIDKey     = "request_id"
	LoggingRequestKey       = "request"
	LoggingMethodKey        = "method"
	LoggingEndpointKey      = "endpoint"
	LoggingRemoteAddrKey    = "remote_addr"
	LoggingUserAgentKey     = "user_agent"
	LoggingQueryKey         = "query"
	LoggingStatusCodeKey    = "status_code"
	LoggingDurationKey      = "duration"
	LoggingSuccessKey       = "success"
	LoggingPractitionerKey  = "practitioner_id"
	LoggingPatientKey       = "patient_id"
	LoggingScheduleIDKey    = "schedule_id"
	LoggingSlotIDKey        = "slot_id"
	LoggingOrderIDKey       = "order_id"
	LoggingTransactionIDKey = "transaction_id"
	LoggingDateKey          = "date"
	LoggingRedisKey         = "redis_key"
	LoggingLockValueKey     = "lock_value"
	LoggingLockTTLKey       = "lock_ttl"
	LoggingQueueKey         = "queue"
	LoggingEventTypeKey     = "event_type"
	LoggingAmountCentsKey   = "amount_cents"
	LoggingMerchantRefKey   = "merchant_reference"
	LoggingExpiredCountKey  = "expired_count"
)
