package web

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wgomg/semprod/internal/metrics"
	"github.com/wgomg/semprod/internal/utils"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// RequestID returns the id assigned by WithRequestID, or "" outside a request.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ctxKey{}).(string); ok {
		return reqID
	}
	return ""
}

func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" || len(reqID) > 128 {
			reqID = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, reqID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, reqID)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// WithAccessLog logs and measures every request. It must wrap the mux
// directly so the matched route pattern is visible after serving.
func WithAccessLog(logger *utils.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(started)
		metrics.ObservePage(route, r.Method, rec.status, elapsed)

		reqID := RequestID(r.Context())
		logger.Info(&reqID, "%s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, elapsed.Round(time.Millisecond))
	})
}
