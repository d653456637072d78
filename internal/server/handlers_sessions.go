package server

import (
	"net/http"

	"github.com/Ragbaje/FrameMe/internal/session"
	"github.com/Ragbaje/FrameMe/internal/types"
	"github.com/Ragbaje/FrameMe/internal/wizard"
)

// ---------------------------------------------------------------------
// Session Handlers
// ---------------------------------------------------------------------

// SessionView is the wire representation of a wizard session.
type SessionView struct {
	ID       string                   `json:"id"`
	Section  wizard.Section           `json:"section"`
	Progress []wizard.ProgressSegment `json:"progress"`
	Record   types.ResumeRecord       `json:"record"`
}

func (s *Server) sessionView(sess *session.Session) SessionView {
	return SessionView{
		ID:       sess.ID,
		Section:  sess.Section(),
		Progress: sess.Progress(),
		Record:   sess.Record(),
	}
}

// session looks up the wizard session named in the path, writing a 404
// when it does not exist or has expired.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := r.PathValue("id")
	sess, ok := s.store.Get(id)
	if !ok {
		s.errorFor(w, &ErrSessionNotFound{ID: id})
		return nil, false
	}
	return sess, true
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.store.Create()
	s.jsonResponse(w, http.StatusCreated, s.sessionView(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionView(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.store.Delete(sess.ID)
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Advance()
	s.jsonResponse(w, http.StatusOK, s.sessionView(sess))
}

func (s *Server) handleRetreat(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Retreat()
	s.jsonResponse(w, http.StatusOK, s.sessionView(sess))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Reset()
	s.jsonResponse(w, http.StatusOK, s.sessionView(sess))
}
