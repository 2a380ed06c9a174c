package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware adds CORS headers and records request metrics.
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		start := time.Now()
		next(rw, r)
		duration := time.Since(start)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, http.StatusText(rw.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration.Seconds())
	}
}

// rateLimitMiddleware enforces per-client rate limits and quotas.
func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.rateLimiter == nil {
			next(w, r)
			return
		}

		clientID := getClientIP(r)
		var dataSize int64
		if r.ContentLength > 0 {
			dataSize = r.ContentLength
		}

		if err := s.rateLimiter.Check(clientID, dataSize); err != nil {
			var rle *RateLimitError
			var qee *QuotaExceededError
			switch {
			case errors.As(err, &rle):
				rateLimitHits.WithLabelValues(rle.Type).Inc()
				w.Header().Set("X-RateLimit-Type", rle.Type)
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rle.Limit))
				w.Header().Set("Retry-After", fmt.Sprintf("%.0f", rle.RetryAfter.Seconds()))
				s.writeError(w, rle.Error(), http.StatusTooManyRequests)
			case errors.As(err, &qee):
				rateLimitHits.WithLabelValues(qee.Type).Inc()
				w.Header().Set("X-Quota-Type", qee.Type)
				w.Header().Set("X-Quota-Limit", strconv.FormatInt(qee.Limit, 10))
				w.Header().Set("X-Quota-Used", strconv.FormatInt(qee.Used, 10))
				s.writeError(w, qee.Error(), http.StatusTooManyRequests)
			default:
				s.writeError(w, "rate limiting check failed", http.StatusInternalServerError)
			}
			return
		}

		next(w, r)
	}
}

// authMiddleware checks HTTP basic auth against the credential store. A nil
// store disables authentication.
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authStore == nil {
			next(w, r)
			return
		}

		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="translater"`)
			s.writeError(w, "authentication required", http.StatusUnauthorized)
			return
		}

		valid, err := s.authStore.Check(username, password)
		if err != nil {
			s.writeError(w, "authentication check failed", http.StatusInternalServerError)
			return
		}
		if !valid {
			w.Header().Set("WWW-Authenticate", `Basic realm="translater"`)
			s.writeError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

// getClientIP extracts the client IP, honoring proxy headers.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx > 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
