package log

const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
	ModeDebug       = "debug"

	EncodingConsole = "console"
	EncodingJSON    = "json"

	// ctxKeyRequestID carries a correlation id into every log line when present.
	ctxKeyRequestID ctxKey = "request_id"
)

type ctxKey string
