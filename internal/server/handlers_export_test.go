package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ragbaje/FrameMe/internal/types"
)

func TestPreview_DefaultVariant(t *testing.T) {
	s := newTestServer(t, nil)
	view := createSession(t, s)

	w := do(s, http.MethodGet, "/sessions/"+view.ID+"/preview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Your Name")
}

func TestPreview_CreativeVariant(t *testing.T) {
	s := newTestServer(t, nil)
	view := createSession(t, s)

	w := do(s, http.MethodPut, "/sessions/"+view.ID+"/personal", types.UpdatePersonalRequest{
		FullName: "Ada Wexford",
		Email:    "ada@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(s, http.MethodGet, "/sessions/"+view.ID+"/preview?template=creative", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ada Wexford")
}

func TestPreview_UnknownTemplate(t *testing.T) {
	s := newTestServer(t, nil)
	view := createSession(t, s)

	w := do(s, http.MethodGet, "/sessions/"+view.ID+"/preview?template=gothic", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreview_SessionNotFound(t *testing.T) {
	s := newTestServer(t, nil)
	w := do(s, http.MethodGet, "/sessions/nope/preview", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExport_UnknownTemplate(t *testing.T) {
	s := newTestServer(t, nil)
	view := createSession(t, s)

	w := do(s, http.MethodPost, "/sessions/"+view.ID+"/export", map[string]string{"template": "gothic"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExport_InvalidBody(t *testing.T) {
	s := newTestServer(t, nil)
	view := createSession(t, s)

	w := do(s, http.MethodPost, "/sessions/"+view.ID+"/export", "not an object")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
