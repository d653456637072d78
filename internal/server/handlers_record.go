package server

import (
	"encoding/json"
	"net/http"

	"github.com/Ragbaje/FrameMe/internal/types"
)

// ---------------------------------------------------------------------
// Record Panel Handlers
// ---------------------------------------------------------------------

func (s *Server) handleUpdatePersonal(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req types.UpdatePersonalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sess.Update(func(rec types.ResumeRecord) types.ResumeRecord {
		return rec.WithPersonalDetails(req.Details())
	})
	s.jsonResponse(w, http.StatusOK, s.sessionView(sess))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req types.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sess.Update(func(rec types.ResumeRecord) types.ResumeRecord {
		return rec.WithProfile(req.Profile)
	})
	s.jsonResponse(w, http.StatusOK, s.sessionView(sess))
}

func (s *Server) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	atCap := false
	sess.Update(func(rec types.ResumeRecord) types.ResumeRecord {
		if len(rec.Education) >= types.MaxEducationEntries {
			atCap = true
			return rec
		}
		return rec.AddEducation()
	})
	if atCap {
		s.errorFor(w, &ErrCapReached{What: "education entry", Max: types.MaxEducationEntries})
		return
	}
	s.jsonResponse(w, http.StatusCreated, s.sessionView(sess))
}

func (s *Server) handleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	entryID := r.PathValue("entry_id")

	var req types.UpdateEducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	found := false
	sess.Update(func(rec types.ResumeRecord) types.ResumeRecord {
		out, ok := rec.UpdateEducation(entryID, req.Entry())
		found = ok
		return out
	})
	if !found {
		s.errorFor(w, &ErrEntryNotFound{EntryID: entryID})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionView(sess))
}

func (s *Server) handleDeleteEducation(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	entryID := r.PathValue("entry_id")

	sess.Update(func(rec types.ResumeRecord) types.ResumeRecord {
		return rec.RemoveEducation(entryID)
	})
	s.jsonResponse(w, http.StatusOK, s.sessionView(sess))
}

func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	atCap := false
	sess.Update(func(rec types.ResumeRecord) types.ResumeRecord {
		if len(rec.Experience) >= types.MaxExperienceEntries {
			atCap = true
			return rec
		}
		return rec.AddExperience()
	})
	if atCap {
		s.errorFor(w, &ErrCapReached{What: "experience entry", Max: types.MaxExperienceEntries})
		return
	}
	s.jsonResponse(w, http.StatusCreated, s.sessionView(sess))
}

func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	entryID := r.PathValue("entry_id")

	var req types.UpdateExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	found := false
	sess.Update(func(rec types.ResumeRecord) types.ResumeRecord {
		out, ok := rec.UpdateExperience(entryID, req.Entry())
		found = ok
		return out
	})
	if !found {
		s.errorFor(w, &ErrEntryNotFound{EntryID: entryID})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionView(sess))
}

func (s *Server) handleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	entryID := r.PathValue("entry_id")

	sess.Update(func(rec types.ResumeRecord) types.ResumeRecord {
		return rec.RemoveExperience(entryID)
	})
	s.jsonResponse(w, http.StatusOK, s.sessionView(sess))
}

func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req types.AddSkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	added := false
	atCap := false
	sess.Update(func(rec types.ResumeRecord) types.ResumeRecord {
		if rec.HasSkill(req.Skill) {
			return rec
		}
		if len(rec.Skills) >= types.MaxSkills {
			atCap = true
			return rec
		}
		added = true
		return rec.AddSkill(req.Skill)
	})
	if atCap {
		s.errorFor(w, &ErrCapReached{What: "skill", Max: types.MaxSkills})
		return
	}

	// 200 instead of 201 tells the client the skill was already listed.
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	s.jsonResponse(w, status, s.sessionView(sess))
}

func (s *Server) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	skill := r.PathValue("skill")

	sess.Update(func(rec types.ResumeRecord) types.ResumeRecord {
		return rec.RemoveSkill(skill)
	})
	s.jsonResponse(w, http.StatusOK, s.sessionView(sess))
}
