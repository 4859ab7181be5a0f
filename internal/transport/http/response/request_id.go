package response

import (
	"net/http"

	appCtx "github.com/dineflow/table-service/internal/pkg/context"
)

// RequestIDFromRequest prefers the id the middleware stashed in the context,
// falling back to the inbound header.
func RequestIDFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	if id := appCtx.GetRequestID(r.Context()); id != "" {
		return id
	}
	if v := r.Header.Get("X-Request-Id"); v != "" {
		return v
	}
	return r.Header.Get("X-Request-ID")
}
