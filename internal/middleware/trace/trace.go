package trace

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"bikeshare/internal/log"
	"bikeshare/internal/metrics"
)

// ContextKey type for context keys
type ContextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey ContextKey = "request_id"

	// RequestIDHeader is echoed back on every response
	RequestIDHeader = "X-Request-ID"
)

// Middleware logs each request, tags it with an ID and records it in
// Prometheus under its route pattern.
type Middleware struct {
	extractIP func(*http.Request) string
	routeOf   func(*http.Request) string
	logger    *log.Logger
	recorder  *metrics.Recorder
}

// NewMiddleware creates a new trace middleware. routeOf maps a request to the
// mux pattern that will serve it; recorder may be nil.
func NewMiddleware(logger *log.Logger, recorder *metrics.Recorder, extractIP, routeOf func(*http.Request) string) *Middleware {
	if logger == nil {
		logger = log.Discard()
	}
	return &Middleware{
		extractIP: extractIP,
		routeOf:   routeOf,
		logger:    logger,
		recorder:  recorder,
	}
}

func (m *Middleware) Middleware(next http.Handler) http.Handler {
	// The request logger picks up the ID once it is in the context.
	traced := log.RequestIDMiddleware(func(r *http.Request) string {
		return GetRequestID(r.Context())
	})(m.observe(next))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = GenerateRequestID()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		if _, ok := ctx.Value(log.LoggerContextKey).(*log.Logger); !ok {
			ctx = context.WithValue(ctx, log.LoggerContextKey, m.logger)
		}
		traced.ServeHTTP(w, r.WithContext(ctx))
	})
}

// observe logs start and end of the request and records it under its route.
func (m *Middleware) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()

		clientIP := ""
		if m.extractIP != nil {
			clientIP = m.extractIP(r)
		}

		sl := log.NewStructuredLogger(log.FromContext(ctx))
		sl.LogHTTPStart(ctx, r, clientIP)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		sl.LogHTTPEnd(ctx, r, rw.statusCode, duration.Milliseconds(), clientIP)

		if m.recorder != nil {
			route := "unmatched"
			if m.routeOf != nil {
				if p := m.routeOf(r); p != "" {
					route = p
				}
			}
			m.recorder.ObserveHTTP(r.Method, route, rw.statusCode, duration)
		}
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// GenerateRequestID creates a random UUID for tracing
func GenerateRequestID() string {
	return uuid.NewString()
}

// GetRequestID extracts the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
