package constvars

// Client-facing messages. Kept generic so internals never leak.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process the request, please check your input"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientSlotUnavailable               = "The selected time slot is no longer available"
	ErrClientScheduleNotFound              = "No schedule found for the requested practitioner and date"
	ErrClientSlotNotFound                  = "The requested time slot does not exist"
	ErrClientPractitionerNotFound          = "The requested practitioner does not exist"
	ErrClientPaymentInitFailed             = "Payment could not be initiated, please try again later"
	ErrClientBookingNotFound               = "No booking found for the given slot"
)

// Developer-facing detail messages, surfaced in logs only.
const (
	ErrDevCannotParseJSON          = "failed to parse JSON request body"
	ErrDevValidationFailed         = "request validation failed"
	ErrDevInvalidDateFormat        = "date must be formatted as YYYY-MM-DD"
	ErrDevDateInPast               = "schedule date is in the past"
	ErrDevInvalidTimeFormat        = "slot time must be formatted as HH:MM (24-hour)"
	ErrDevSlotEndNotAfterStart     = "slot end time must be strictly after start time"
	ErrDevDuplicateSlotInRequest   = "duplicate time slot within request"
	ErrDevOverlappingSlot          = "slot overlaps an existing or requested slot"
	ErrDevRoleMismatch             = "caller role does not permit this operation"
	ErrDevScheduleOwnershipFailed  = "caller is not the owner of this schedule"
	ErrDevSlotNotOpen              = "slot is not in the open state"
	ErrDevSlotReservationLost      = "conditional reservation matched no open slot"
	ErrDevOrderNotFound            = "no slot references the given order id"
	ErrDevAuthTokenMissing         = "authorization token missing"
	ErrDevAuthTokenInvalid         = "authorization token invalid or expired"
	ErrDevWebhookSignatureMismatch = "webhook signature does not match computed HMAC"

	ErrDevDBFailedToFindDocument   = "failed to find document in database"
	ErrDevDBFailedToInsertDocument = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument = "failed to update document in database"
	ErrDevDBFailedToDeleteDocument = "failed to delete document from database"
	ErrDevDBFailedToEnsureIndexes  = "failed to ensure database indexes"

	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisSetData    = "failed to set data in redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"
	ErrDevRedisUnlock     = "failed to release redis lock"

	ErrDevRabbitMQPublish = "failed to publish message to rabbitmq queue"

	ErrDevCreateHTTPRequest  = "failed to create outbound HTTP request"
	ErrDevSendHTTPRequest    = "failed to send outbound HTTP request"
	ErrDevPaymobAuth         = "payment provider authentication failed"
	ErrDevPaymobCreateOrder  = "payment provider order registration failed"
	ErrDevPaymobPaymentKey   = "payment provider payment key request failed"
	ErrDevPaymobBadStatus    = "payment provider responded with non-2xx status"
	ErrDevCannotMarshalJSON  = "failed to marshal value to JSON"
	ErrDevDecodeResponseBody = "failed to decode response body"
)
