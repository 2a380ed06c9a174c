// Package server exposes the translation pipeline over HTTP: document
// upload endpoints, a raw text endpoint, health and language probes, a
// Prometheus metrics endpoint, and a WebSocket progress stream.
package server

import (
	"context"

	"github.com/katelkum/translater/internal/auth"
	"github.com/katelkum/translater/internal/pipeline"
)

// translationPipeline defines what the server needs from a pipeline.
type translationPipeline interface {
	ProcessText(ctx context.Context, text string) (*pipeline.DocumentResult, error)
	ProcessPDF(ctx context.Context, path string) (*pipeline.DocumentResult, error)
	ProcessImage(ctx context.Context, path string) (*pipeline.DocumentResult, error)
	ProcessDOCX(ctx context.Context, path string) (*pipeline.DocumentResult, error)
	Close() error
}

// Config holds server configuration.
type Config struct {
	Host            string
	Port            int
	CORSOrigin      string
	MaxUploadMB     int64
	TimeoutSec      int
	ShutdownTimeout int
	RateLimitPerMin int
	SourceLang      string
	TargetLang      string
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	pipeline    translationPipeline
	progressPl  *pipeline.Pipeline
	authStore   *auth.Store
	corsOrigin  string
	maxUploadMB int64
	timeoutSec  int
	sourceLang  string
	targetLang  string
	rateLimiter *RateLimiter
}

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// LanguagesResponse reports the configured language pair.
type LanguagesResponse struct {
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// TranslateTextRequest is the JSON body of the raw text endpoint.
type TranslateTextRequest struct {
	Text string `json:"text"`
}

// TranslationResponse wraps a pipeline result for JSON output.
type TranslationResponse struct {
	Result *pipeline.DocumentResult `json:"result"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
