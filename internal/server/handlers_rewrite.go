package server

import (
	"net/http"
	"strings"

	"github.com/Ragbaje/FrameMe/internal/rewriting"
	"github.com/Ragbaje/FrameMe/internal/session"
	"github.com/Ragbaje/FrameMe/internal/types"
)

// ---------------------------------------------------------------------
// AI Rewriting Handlers
// ---------------------------------------------------------------------

// msgNoExperience matches the hint shown when skill suggestions are
// requested before any experience has been written down.
const msgNoExperience = "Add some experience first for better suggestions."

func (s *Server) handleRewriteProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if s.rewriter == nil {
		s.errorFor(w, &ErrRewritingDisabled{})
		return
	}

	text := sess.Record().Profile
	if strings.TrimSpace(text) == "" {
		s.errorFor(w, &ErrValidation{Field: "profile", Message: "write a first draft before asking for a rewrite"})
		return
	}

	if !sess.TryAcquire(session.BusyProfile) {
		s.errorFor(w, &ErrRewriteInProgress{Target: "the profile"})
		return
	}
	defer sess.Release(session.BusyProfile)

	rewritten, err := s.rewriter.RewriteProfile(r.Context(), text)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, rewriting.UserMessage(err))
		return
	}

	sess.Update(func(rec types.ResumeRecord) types.ResumeRecord {
		return rec.WithProfile(rewritten)
	})
	s.jsonResponse(w, http.StatusOK, s.sessionView(sess))
}

func (s *Server) handleRewriteExperience(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if s.rewriter == nil {
		s.errorFor(w, &ErrRewritingDisabled{})
		return
	}
	entryID := r.PathValue("entry_id")

	entry, found := sess.Record().ExperienceByID(entryID)
	if !found {
		s.errorFor(w, &ErrEntryNotFound{EntryID: entryID})
		return
	}
	if strings.TrimSpace(entry.RawNotes) == "" {
		s.errorFor(w, &ErrValidation{Field: "raw_notes", Message: "jot down some notes about the role before asking for a rewrite"})
		return
	}

	// One in-flight rewrite per entry, keyed by the entry's stable ID.
	if !sess.TryAcquire(entryID) {
		s.errorFor(w, &ErrRewriteInProgress{Target: "this experience entry"})
		return
	}
	defer sess.Release(entryID)

	bullets, err := s.rewriter.RewriteBullets(r.Context(), entry.RawNotes)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, rewriting.UserMessage(err))
		return
	}

	applied := false
	sess.Update(func(rec types.ResumeRecord) types.ResumeRecord {
		out, ok := rec.WithResponsibilities(entryID, bullets)
		applied = ok
		return out
	})
	if !applied {
		// Entry was deleted while the rewrite was in flight.
		s.errorFor(w, &ErrEntryNotFound{EntryID: entryID})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionView(sess))
}

func (s *Server) handleSuggestSkills(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if s.rewriter == nil {
		s.errorFor(w, &ErrRewritingDisabled{})
		return
	}

	description := experienceSummary(sess.Record())
	if description == "" {
		s.errorResponse(w, http.StatusBadRequest, msgNoExperience)
		return
	}

	if !sess.TryAcquire(session.BusySkills) {
		s.errorFor(w, &ErrRewriteInProgress{Target: "skill suggestions"})
		return
	}
	defer sess.Release(session.BusySkills)

	suggested, err := s.rewriter.SuggestSkills(r.Context(), description)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, rewriting.UserMessage(err))
		return
	}

	sess.Update(func(rec types.ResumeRecord) types.ResumeRecord {
		return rec.MergeSkills(suggested)
	})
	s.jsonResponse(w, http.StatusOK, s.sessionView(sess))
}

// experienceSummary flattens the experience entries into the prompt
// context for skill suggestions, one "title: bullets" line per entry.
func experienceSummary(rec types.ResumeRecord) string {
	var lines []string
	for _, exp := range rec.Experience {
		line := strings.TrimSpace(exp.JobTitle + ": " + strings.Join(exp.Responsibilities, " "))
		if line != ":" && line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
