package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ragbaje/FrameMe/internal/export"
	"github.com/Ragbaje/FrameMe/internal/rendering"
	"github.com/Ragbaje/FrameMe/internal/server/ratelimit"
	"github.com/Ragbaje/FrameMe/internal/session"
)

// stubRewriter stands in for the Gemini-backed rewriter.
type stubRewriter struct {
	bullets []string
	profile string
	skills  []string
	err     error

	gotNotes       string
	gotText        string
	gotDescription string
}

func (s *stubRewriter) RewriteBullets(_ context.Context, notes string) ([]string, error) {
	s.gotNotes = notes
	return s.bullets, s.err
}

func (s *stubRewriter) RewriteProfile(_ context.Context, text string) (string, error) {
	s.gotText = text
	return s.profile, s.err
}

func (s *stubRewriter) SuggestSkills(_ context.Context, description string) ([]string, error) {
	s.gotDescription = description
	return s.skills, s.err
}

func newTestServer(t *testing.T, rw rewriteService) *Server {
	t.Helper()
	s := &Server{
		store:          session.NewStore(time.Hour),
		exporter:       export.NewExporter(""),
		defaultVariant: rendering.VariantModern,
		rewriter:       rw,
		rateLimiter:    ratelimit.NewLimiter(&ratelimit.Config{Enabled: false}),
	}
	t.Cleanup(func() {
		s.store.Stop()
		s.rateLimiter.Stop()
	})
	return s
}

// do runs a request through the mux so path values resolve.
func do(s *Server, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) SessionView {
	t.Helper()
	var view SessionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	return view
}

func createSession(t *testing.T, s *Server) SessionView {
	t.Helper()
	w := do(s, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeView(t, w)
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["error"]
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, nil)
	w := do(s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.EqualValues(t, 0, resp["sessions"])
}

func TestHandleHealth_CountsSessions(t *testing.T) {
	s := newTestServer(t, nil)
	createSession(t, s)
	createSession(t, s)

	w := do(s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp["sessions"])
}

func TestCreateSession_StartsAtWelcome(t *testing.T) {
	s := newTestServer(t, nil)
	view := createSession(t, s)

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "welcome", string(view.Section))
	assert.Equal(t, "Your Name", view.Record.PersonalDetails.FullName)
	assert.Len(t, view.Record.Education, 1)
	assert.Len(t, view.Record.Experience, 1)
}

func TestGetSession(t *testing.T) {
	s := newTestServer(t, nil)
	view := createSession(t, s)

	w := do(s, http.MethodGet, "/sessions/"+view.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, view.ID, decodeView(t, w).ID)
}

func TestGetSession_NotFound(t *testing.T) {
	s := newTestServer(t, nil)
	w := do(s, http.MethodGet, "/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSession(t *testing.T) {
	s := newTestServer(t, nil)
	view := createSession(t, s)

	w := do(s, http.MethodDelete, "/sessions/"+view.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(s, http.MethodGet, "/sessions/"+view.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNavigation_AdvanceRetreatReset(t *testing.T) {
	s := newTestServer(t, nil)
	view := createSession(t, s)

	w := do(s, http.MethodPost, "/sessions/"+view.ID+"/advance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "personalDetails", string(decodeView(t, w).Section))

	w = do(s, http.MethodPost, "/sessions/"+view.ID+"/retreat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "welcome", string(decodeView(t, w).Section))

	// Retreating off the front is a no-op.
	w = do(s, http.MethodPost, "/sessions/"+view.ID+"/retreat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "welcome", string(decodeView(t, w).Section))

	for i := 0; i < 3; i++ {
		w = do(s, http.MethodPost, "/sessions/"+view.ID+"/advance", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, "education", string(decodeView(t, w).Section))

	w = do(s, http.MethodPost, "/sessions/"+view.ID+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	reset := decodeView(t, w)
	assert.Equal(t, "welcome", string(reset.Section))
	// Reset returns to the start without discarding the record.
	assert.Equal(t, "Your Name", reset.Record.PersonalDetails.FullName)
}

func TestWithCORS_Options(t *testing.T) {
	s := newTestServer(t, nil)
	handler := s.withCORS(s.routes())

	req := httptest.NewRequest(http.MethodOptions, "/sessions", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestWithRateLimit_Denies(t *testing.T) {
	s := newTestServer(t, nil)
	s.rateLimiter.Stop()
	s.rateLimiter = ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
	})
	t.Cleanup(s.rateLimiter.Stop)
	handler := s.withRateLimit(s.routes())

	req := httptest.NewRequest(http.MethodGet, "/sessions/nope", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestNew_RejectsUnknownTemplate(t *testing.T) {
	_, err := New(Config{Port: 0, DefaultTemplate: "gothic"})
	assert.Error(t, err)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(&ErrSessionNotFound{ID: "x"}))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(&ErrEntryNotFound{EntryID: "x"}))
	assert.Equal(t, http.StatusConflict, HTTPStatus(&ErrRewriteInProgress{Target: "x"}))
	assert.Equal(t, http.StatusConflict, HTTPStatus(&ErrCapReached{What: "skill", Max: 20}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrValidation{Field: "f", Message: "m"}))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(&ErrRewritingDisabled{}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(assert.AnError))
}
