package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = contextKey("requestID")

	// maxRequestIDLength bounds caller-supplied ids so log lines stay sane.
	maxRequestIDLength = 64
)

// requestID reuses the caller's X-Request-ID when it looks reasonable and
// generates one otherwise. The id is echoed back on the response and stored
// in the request context for logRequest.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey).(string); ok {
		return reqID
	}

	return ""
}

// logRequest writes one line when a request starts and one when it
// completes, carrying the request id, the final status code and the
// duration.
func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := s.log.With(
			slog.String("request_id", getRequestID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
		)
		log.Info("request started")

		wrapper := newResponseWriterWrapper(w)
		start := time.Now()

		next.ServeHTTP(wrapper, r)

		log.Info("request completed",
			slog.Int("status", wrapper.statusCode),
			slog.String("duration", time.Since(start).String()),
		)
	})
}
