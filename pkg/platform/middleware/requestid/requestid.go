// Package requestid assigns each request a correlation ID, reusing the caller's when sent.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"custid/pkg/requestcontext"
)

// Header carries the request ID in both directions.
const Header = "X-Request-ID"

// maxLength bounds caller-supplied IDs so they cannot bloat logs and audit records.
const maxLength = 128

// Middleware stores the request ID in the context and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(Header)
		if reqID == "" || len(reqID) > maxLength {
			reqID = uuid.NewString()
		}
		w.Header().Set(Header, reqID)
		ctx := requestcontext.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
