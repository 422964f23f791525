package constvars

type contextKey string

const (
	CONTEXT_REQUEST_ID_KEY  contextKey = "request_id"
	CONTEXT_USER_ID_KEY     contextKey = "user_id"
	CONTEXT_USER_ROLE_KEY   contextKey = "user_role"
	CONTEXT_USER_CLAIMS_KEY contextKey = "user_claims"
)

const (
	RolePatient      = "patient"
	RolePractitioner = "doctor"
)

const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

const (
	RedisKeyPaymobAuthToken = "paymob:auth_token"
	RedisKeySweepLeaderLock = "slotsweep:leader"
)
