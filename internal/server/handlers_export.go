package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Ragbaje/FrameMe/internal/export"
	"github.com/Ragbaje/FrameMe/internal/rendering"
	"github.com/Ragbaje/FrameMe/internal/types"
)

// ---------------------------------------------------------------------
// Preview and Export Handlers
// ---------------------------------------------------------------------

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	variant := s.defaultVariant
	if name := r.URL.Query().Get("template"); name != "" {
		v, err := rendering.ParseVariant(name)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		variant = v
	}

	html, err := rendering.Render(sess.Record(), variant)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to render preview: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, html)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	req := types.ExportRequest{Template: string(s.defaultVariant)}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	variant, err := rendering.ParseVariant(req.Template)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	record := sess.Record()
	html, err := rendering.Render(record, variant)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to render CV: "+err.Error())
		return
	}

	pdf, err := s.exporter.ExportPDF(r.Context(), html)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to export PDF: "+err.Error())
		return
	}

	filename := export.Filename(record.PersonalDetails.FullName, variant)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		return
	}
}
