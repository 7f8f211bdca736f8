package idempotency

import (
	"bytes"
	"io"
	"net/http"
)

// RequestIDHeader is the header clients set on mutating requests.
const RequestIDHeader = "requestId"

// Middleware enforces the guard on every request it wraps. Requests
// without a request id header are refused outright rather than passed
// through unchecked. The body is read to compute the hash and restored
// for the downstream handler.
func Middleware(guard *Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"requestId header is required"}`))
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"failed to read request body"}`))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			if err := guard.Register(requestID, BodyHash(body)); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(`{"error":"duplicate request"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
