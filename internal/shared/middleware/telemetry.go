package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Telemetry layers otelhttp's server instrumentation over the handler:
// per-request spans plus duration, in-flight, and size metrics.
func Telemetry(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "fintrack-api")
}
