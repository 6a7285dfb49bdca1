package middleware

import (
	"net/http"

	wrap "github.com/SakerDakak/taxipay-dashboard/pkg/logger/wrapper"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"

	maxRequestIDLength = 128
)

// RequestID reuses the caller's X-Request-ID or generates one, echoes it on the
// response and puts it into the log context.
func (m *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderRequestID)
		if reqID == "" || len(reqID) > maxRequestIDLength {
			reqID = uuid.NewString()
			r.Header.Set(HeaderRequestID, reqID)
		}

		w.Header().Set(HeaderRequestID, reqID)

		ctx := wrap.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
