package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katelkum/translater/internal/auth"
	"github.com/katelkum/translater/internal/pipeline"
)

// fakePipeline implements translationPipeline without any backends.
type fakePipeline struct {
	err error
}

func (f *fakePipeline) result(text string) (*pipeline.DocumentResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &pipeline.DocumentResult{
		Chunks:      []pipeline.ChunkResult{{Index: 0, SourceText: text, Translated: "it: " + text}},
		Translation: "it: " + text,
	}, nil
}

func (f *fakePipeline) ProcessText(ctx context.Context, text string) (*pipeline.DocumentResult, error) {
	return f.result(text)
}

func (f *fakePipeline) ProcessPDF(ctx context.Context, path string) (*pipeline.DocumentResult, error) {
	return f.result("pdf:" + path)
}

func (f *fakePipeline) ProcessImage(ctx context.Context, path string) (*pipeline.DocumentResult, error) {
	return f.result("image:" + path)
}

func (f *fakePipeline) ProcessDOCX(ctx context.Context, path string) (*pipeline.DocumentResult, error) {
	return f.result("docx:" + path)
}

func (f *fakePipeline) Close() error { return nil }

func newTestServer(fp *fakePipeline, authStore *auth.Store) *Server {
	s := NewServer(Config{
		CORSOrigin:  "*",
		MaxUploadMB: 10,
		SourceLang:  "Arabic",
		TargetLang:  "Italian",
	}, nil, authStore)
	s.pipeline = fp
	return s
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(&fakePipeline{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.NotEmpty(t, resp.Time)
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	s := newTestServer(&fakePipeline{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestLanguagesHandler(t *testing.T) {
	s := newTestServer(&fakePipeline{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/languages", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp LanguagesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Arabic", resp.SourceLang)
	assert.Equal(t, "Italian", resp.TargetLang)
}

func TestTranslateTextHandler(t *testing.T) {
	s := newTestServer(&fakePipeline{}, nil)

	body := bytes.NewBufferString(`{"text":"مرحبا"}`)
	req := httptest.NewRequest(http.MethodPost, "/translate/text", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp TranslationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "it: مرحبا", resp.Result.Translation)
}

func TestTranslateTextHandler_PlainTextFormat(t *testing.T) {
	s := newTestServer(&fakePipeline{}, nil)

	body := bytes.NewBufferString(`{"text":"مرحبا"}`)
	req := httptest.NewRequest(http.MethodPost, "/translate/text?format=text", body)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "it: مرحبا", rec.Body.String())
}

func TestTranslateTextHandler_EmptyText(t *testing.T) {
	s := newTestServer(&fakePipeline{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/translate/text", bytes.NewBufferString(`{"text":""}`))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTranslateTextHandler_InvalidBody(t *testing.T) {
	s := newTestServer(&fakePipeline{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/translate/text", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTranslateTextHandler_PipelineError(t *testing.T) {
	s := newTestServer(&fakePipeline{err: assert.AnError}, nil)

	req := httptest.NewRequest(http.MethodPost, "/translate/text", bytes.NewBufferString(`{"text":"x"}`))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestTranslateUpload_DOCX(t *testing.T) {
	s := newTestServer(&fakePipeline{}, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "doc.docx")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake docx payload"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/translate/docx", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp TranslationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, strings.HasPrefix(resp.Result.Translation, "it: docx:"))
}

func TestTranslateUpload_NoFile(t *testing.T) {
	s := newTestServer(&fakePipeline{}, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/translate/pdf", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	store, err := auth.NewStore(t.TempDir() + "/credentials.json")
	require.NoError(t, err)
	require.NoError(t, store.Register("alice", "pw"))

	s := newTestServer(&fakePipeline{}, store)

	// No credentials.
	req := httptest.NewRequest(http.MethodPost, "/translate/text", bytes.NewBufferString(`{"text":"x"}`))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong credentials.
	req = httptest.NewRequest(http.MethodPost, "/translate/text", bytes.NewBufferString(`{"text":"x"}`))
	req.SetBasicAuth("alice", "wrong")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid credentials.
	req = httptest.NewRequest(http.MethodPost, "/translate/text", bytes.NewBufferString(`{"text":"x"}`))
	req.SetBasicAuth("alice", "pw")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterHandler(t *testing.T) {
	store, err := auth.NewStore(t.TempDir() + "/credentials.json")
	require.NoError(t, err)

	s := newTestServer(&fakePipeline{}, store)

	body := bytes.NewBufferString(`{"username":"bob","password":"pw"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate registration fails.
	body = bytes.NewBufferString(`{"username":"bob","password":"pw"}`)
	req = httptest.NewRequest(http.MethodPost, "/auth/register", body)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginHandler(t *testing.T) {
	store, err := auth.NewStore(t.TempDir() + "/credentials.json")
	require.NoError(t, err)
	require.NoError(t, store.Register("carol", "pw"))

	s := newTestServer(&fakePipeline{}, store)

	body := bytes.NewBufferString(`{"username":"carol","password":"pw"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	body = bytes.NewBufferString(`{"username":"carol","password":"wrong"}`)
	req = httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(&fakePipeline{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
