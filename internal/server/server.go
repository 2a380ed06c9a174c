package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katelkum/translater/internal/auth"
	"github.com/katelkum/translater/internal/pipeline"
)

// NewServer wires a server around an assembled pipeline. authStore may be
// nil, which disables authentication.
func NewServer(cfg Config, pl *pipeline.Pipeline, authStore *auth.Store) *Server {
	var limiter *RateLimiter
	if cfg.RateLimitPerMin > 0 {
		limiter = NewRateLimiter(cfg.RateLimitPerMin, 0, 0)
	}

	maxUploadMB := cfg.MaxUploadMB
	if maxUploadMB <= 0 {
		maxUploadMB = 50
	}

	return &Server{
		pipeline:    pl,
		progressPl:  pl,
		authStore:   authStore,
		corsOrigin:  cfg.CORSOrigin,
		maxUploadMB: maxUploadMB,
		timeoutSec:  cfg.TimeoutSec,
		sourceLang:  cfg.SourceLang,
		targetLang:  cfg.TargetLang,
		rateLimiter: limiter,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/languages", s.corsMiddleware(s.languagesHandler))
	mux.Handle("/metrics", promhttp.Handler())

	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return s.corsMiddleware(s.rateLimitMiddleware(s.authMiddleware(h)))
	}
	mux.HandleFunc("/translate/text", protected(s.translateTextHandler))
	mux.HandleFunc("/translate/pdf", protected(s.translatePDFHandler))
	mux.HandleFunc("/translate/image", protected(s.translateImageHandler))
	mux.HandleFunc("/translate/docx", protected(s.translateDOCXHandler))
	mux.HandleFunc("/ws/translate", s.translateWebSocketHandler)

	if s.authStore != nil {
		mux.HandleFunc("/auth/register", s.corsMiddleware(s.registerHandler))
		mux.HandleFunc("/auth/login", s.corsMiddleware(s.loginHandler))
	}

	return mux
}

// HTTPServer builds the net/http server with timeouts applied.
func (s *Server) HTTPServer(host string, port int) *http.Server {
	timeout := time.Duration(s.timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
}

// Close releases the pipeline.
func (s *Server) Close() error {
	if s.pipeline != nil {
		return s.pipeline.Close()
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
