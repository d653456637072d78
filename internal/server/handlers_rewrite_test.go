package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ragbaje/FrameMe/internal/rewriting"
	"github.com/Ragbaje/FrameMe/internal/session"
	"github.com/Ragbaje/FrameMe/internal/types"
)

func TestRewriteProfile(t *testing.T) {
	rw := &stubRewriter{profile: "A polished profile."}
	s := newTestServer(t, rw)
	view := createSession(t, s)

	w := do(s, http.MethodPost, "/sessions/"+view.ID+"/profile/rewrite", nil)
	require.Equal(t, http.StatusOK, w.Code)

	updated := decodeView(t, w)
	assert.Equal(t, "A polished profile.", updated.Record.Profile)
	assert.Equal(t, view.Record.Profile, rw.gotText)
}

func TestRewriteProfile_Disabled(t *testing.T) {
	s := newTestServer(t, nil)
	view := createSession(t, s)

	w := do(s, http.MethodPost, "/sessions/"+view.ID+"/profile/rewrite", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRewriteProfile_EmptyProfile(t *testing.T) {
	s := newTestServer(t, &stubRewriter{})
	view := createSession(t, s)

	w := do(s, http.MethodPut, "/sessions/"+view.ID+"/profile", types.UpdateProfileRequest{Profile: ""})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(s, http.MethodPost, "/sessions/"+view.ID+"/profile/rewrite", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRewriteProfile_Busy(t *testing.T) {
	s := newTestServer(t, &stubRewriter{profile: "x"})
	view := createSession(t, s)

	sess, ok := s.store.Get(view.ID)
	require.True(t, ok)
	require.True(t, sess.TryAcquire(session.BusyProfile))
	defer sess.Release(session.BusyProfile)

	w := do(s, http.MethodPost, "/sessions/"+view.ID+"/profile/rewrite", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRewriteProfile_APIFailure(t *testing.T) {
	rw := &stubRewriter{err: &rewriting.APICallError{Message: "Failed to get a response from the AI. Please try again."}}
	s := newTestServer(t, rw)
	view := createSession(t, s)

	w := do(s, http.MethodPost, "/sessions/"+view.ID+"/profile/rewrite", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Failed to get a response from the AI. Please try again.", errorMessage(t, w))

	// A failed rewrite never touches the record.
	w = do(s, http.MethodGet, "/sessions/"+view.ID, nil)
	assert.Equal(t, view.Record.Profile, decodeView(t, w).Record.Profile)
}

func TestRewriteExperience(t *testing.T) {
	rw := &stubRewriter{bullets: []string{"Served customers.", "Restocked shelves.", "Handled cash."}}
	s := newTestServer(t, rw)
	view := createSession(t, s)
	entryID := view.Record.Experience[0].ID

	w := do(s, http.MethodPut, "/sessions/"+view.ID+"/experience/"+entryID, types.UpdateExperienceRequest{
		Company:  "Corner Shop",
		JobTitle: "Weekend Assistant",
		RawNotes: "did the till, restocked, handled money",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(s, http.MethodPost, "/sessions/"+view.ID+"/experience/"+entryID+"/rewrite", nil)
	require.Equal(t, http.StatusOK, w.Code)

	updated := decodeView(t, w)
	assert.Equal(t, rw.bullets, updated.Record.Experience[0].Responsibilities)
	// Raw notes stay so the user can iterate on them.
	assert.Equal(t, "did the till, restocked, handled money", updated.Record.Experience[0].RawNotes)
	assert.Equal(t, "did the till, restocked, handled money", rw.gotNotes)
}

func TestRewriteExperience_EmptyNotes(t *testing.T) {
	s := newTestServer(t, &stubRewriter{})
	view := createSession(t, s)
	entryID := view.Record.Experience[0].ID

	w := do(s, http.MethodPost, "/sessions/"+view.ID+"/experience/"+entryID+"/rewrite", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRewriteExperience_UnknownEntry(t *testing.T) {
	s := newTestServer(t, &stubRewriter{})
	view := createSession(t, s)

	w := do(s, http.MethodPost, "/sessions/"+view.ID+"/experience/nope/rewrite", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRewriteExperience_BusyPerEntry(t *testing.T) {
	s := newTestServer(t, &stubRewriter{bullets: []string{"x"}})
	view := createSession(t, s)
	entryID := view.Record.Experience[0].ID

	sess, ok := s.store.Get(view.ID)
	require.True(t, ok)
	sess.Update(func(rec types.ResumeRecord) types.ResumeRecord {
		entry, _ := rec.ExperienceByID(entryID)
		entry.RawNotes = "some notes"
		out, _ := rec.UpdateExperience(entryID, entry)
		return out
	})

	require.True(t, sess.TryAcquire(entryID))
	defer sess.Release(entryID)

	w := do(s, http.MethodPost, "/sessions/"+view.ID+"/experience/"+entryID+"/rewrite", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The profile rewrite is independent of the per-entry flag.
	w = do(s, http.MethodPost, "/sessions/"+view.ID+"/profile/rewrite", nil)
	assert.NotEqual(t, http.StatusConflict, w.Code)
}

func TestSuggestSkills(t *testing.T) {
	rw := &stubRewriter{skills: []string{"Customer Service", "teamwork", "Organisation"}}
	s := newTestServer(t, rw)
	view := createSession(t, s)

	w := do(s, http.MethodPost, "/sessions/"+view.ID+"/skills/suggest", nil)
	require.Equal(t, http.StatusOK, w.Code)

	updated := decodeView(t, w)
	assert.Contains(t, updated.Record.Skills, "Customer Service")
	assert.Contains(t, updated.Record.Skills, "Organisation")
	// "Teamwork" is already present; the lowercase suggestion must not duplicate it.
	count := 0
	for _, skill := range updated.Record.Skills {
		if skill == "Teamwork" || skill == "teamwork" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	assert.Contains(t, rw.gotDescription, "Sales Assistant")
	assert.Contains(t, rw.gotDescription, "Operated the till")
}

func TestSuggestSkills_NoExperience(t *testing.T) {
	s := newTestServer(t, &stubRewriter{})
	view := createSession(t, s)
	entryID := view.Record.Experience[0].ID

	w := do(s, http.MethodDelete, "/sessions/"+view.ID+"/experience/"+entryID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(s, http.MethodPost, "/sessions/"+view.ID+"/skills/suggest", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Add some experience first for better suggestions.", errorMessage(t, w))
}

func TestSuggestSkills_RespectsCap(t *testing.T) {
	suggested := make([]string, 0, 10)
	for _, skill := range []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta", "Eta", "Theta", "Iota", "Kappa"} {
		suggested = append(suggested, skill)
	}
	s := newTestServer(t, &stubRewriter{skills: suggested})
	view := createSession(t, s)

	sess, ok := s.store.Get(view.ID)
	require.True(t, ok)
	sess.Update(func(rec types.ResumeRecord) types.ResumeRecord {
		for i := 0; len(rec.Skills) < types.MaxSkills-2; i++ {
			rec = rec.AddSkill("Filler " + string(rune('A'+i)))
		}
		return rec
	})

	w := do(s, http.MethodPost, "/sessions/"+view.ID+"/skills/suggest", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeView(t, w).Record.Skills, types.MaxSkills)
}
