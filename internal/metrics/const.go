package metrics

const Namespace = "exchange_frontend"

const (
	IdentityResultOK           = "ok"
	IdentityResultUnauthorized = "unauthorized"
	IdentityResultError        = "error"
)

const (
	IntentOperationSave  = "save"
	IntentOperationRead  = "read"
	IntentOperationClear = "clear"
)

const (
	IntentReadOutcomeHit     = "hit"
	IntentReadOutcomeMiss    = "miss"
	IntentReadOutcomeExpired = "expired"
	IntentReadOutcomeCorrupt = "corrupt"
)
