package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/katelkum/translater/internal/pipeline"
	"github.com/katelkum/translater/internal/version"
)

// healthHandler reports server liveness.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

// languagesHandler reports the configured translation pair.
func (s *Server) languagesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, LanguagesResponse{
		SourceLang: s.sourceLang,
		TargetLang: s.targetLang,
	})
}

// registerHandler creates a new user account.
func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.authStore.Register(req.Username, req.Password); err != nil {
		s.writeError(w, err.Error(), http.StatusConflict)
		return
	}

	w.WriteHeader(http.StatusCreated)
	s.writeJSON(w, map[string]string{"status": "registered", "username": req.Username})
}

// loginHandler verifies credentials so clients can check them before
// starting a long upload.
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ok, err := s.authStore.Check(req.Username, req.Password)
	if err != nil {
		s.writeError(w, "failed to verify credentials", http.StatusInternalServerError)
		return
	}
	if !ok {
		s.writeError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	s.writeJSON(w, map[string]string{"status": "ok", "username": req.Username})
}

// translateTextHandler translates raw text from a JSON body.
func (s *Server) translateTextHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)

	var req TranslateTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		s.writeError(w, "text must not be empty", http.StatusBadRequest)
		return
	}

	s.runTranslation(w, r, "text", func(ctx context.Context) (*pipeline.DocumentResult, error) {
		return s.pipeline.ProcessText(ctx, req.Text)
	})
}

// translatePDFHandler translates an uploaded PDF.
func (s *Server) translatePDFHandler(w http.ResponseWriter, r *http.Request) {
	s.translateUpload(w, r, "pdf", ".pdf", s.pipeline.ProcessPDF)
}

// translateImageHandler translates an uploaded page image.
func (s *Server) translateImageHandler(w http.ResponseWriter, r *http.Request) {
	s.translateUpload(w, r, "image", ".png", s.pipeline.ProcessImage)
}

// translateDOCXHandler translates an uploaded Word document.
func (s *Server) translateDOCXHandler(w http.ResponseWriter, r *http.Request) {
	s.translateUpload(w, r, "docx", ".docx", s.pipeline.ProcessDOCX)
}

// translateUpload accepts a multipart upload, stages it to a temp file, and
// runs it through the given pipeline operation.
func (s *Server) translateUpload(
	w http.ResponseWriter,
	r *http.Request,
	docType, defaultExt string,
	process func(context.Context, string) (*pipeline.DocumentResult, error),
) {
	if r.Method != http.MethodPost {
		s.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)
	if err := r.ParseMultipartForm(s.maxUploadMB * 1024 * 1024); err != nil {
		s.writeError(w, "failed to parse form data", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, "no file provided", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > s.maxUploadMB*1024*1024 {
		s.writeError(w, "file too large", http.StatusRequestEntityTooLarge)
		return
	}
	uploadSizeBytes.Observe(float64(header.Size))

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = defaultExt
	}
	tempFile, err := os.CreateTemp("", "translater-upload-*"+ext)
	if err != nil {
		s.writeError(w, "failed to stage upload", http.StatusInternalServerError)
		return
	}
	tempPath := tempFile.Name()
	defer func() { _ = os.Remove(tempPath) }()

	if _, err := io.Copy(tempFile, file); err != nil {
		_ = tempFile.Close()
		s.writeError(w, "failed to stage upload", http.StatusInternalServerError)
		return
	}
	if err := tempFile.Close(); err != nil {
		s.writeError(w, "failed to stage upload", http.StatusInternalServerError)
		return
	}

	s.runTranslation(w, r, docType, func(ctx context.Context) (*pipeline.DocumentResult, error) {
		return process(ctx, tempPath)
	})
}

// runTranslation executes a pipeline operation with timeout and renders the
// result in the requested format.
func (s *Server) runTranslation(
	w http.ResponseWriter,
	r *http.Request,
	docType string,
	run func(context.Context) (*pipeline.DocumentResult, error),
) {
	ctx := r.Context()
	if s.timeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.timeoutSec)*time.Second)
		defer cancel()
	}

	start := time.Now()
	result, err := run(ctx)
	if err != nil {
		translationRequestsTotal.WithLabelValues(docType, "error").Inc()
		s.writeError(w, fmt.Sprintf("translation failed: %v", err), http.StatusInternalServerError)
		return
	}
	translationRequestsTotal.WithLabelValues(docType, "success").Inc()
	translationDuration.WithLabelValues(docType).Observe(time.Since(start).Seconds())
	translationChunks.WithLabelValues(docType).Observe(float64(len(result.Chunks)))

	format := r.FormValue("format")
	if format == "" {
		format = r.URL.Query().Get("format")
	}

	switch format {
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(result.Translation))
	case "yaml":
		out, err := result.Format("yaml")
		if err != nil {
			s.writeError(w, fmt.Sprintf("formatting failed: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(out))
	default:
		s.writeJSON(w, TranslationResponse{Result: result})
	}
}
