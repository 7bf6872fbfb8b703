package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Draft routes accept an optional note id; without one they address the
// draft slot of a note that has not been created yet.

func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.DraftService.Save(r.Context(), chi.URLParam(r, "id"), body.Text); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := s.DraftService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, draft)
}

func (s *Server) handleDropDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.DraftService.Drop(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
