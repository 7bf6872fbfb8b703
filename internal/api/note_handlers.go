package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kmazurov/fhmp/internal/logger"
)

type notePayload struct {
	Text string `json:"text"`
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var body notePayload
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	note, err := s.NoteService.Create(r.Context(), body.Text)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("note created: id=%s", note.ID)
	writeJSON(w, r, http.StatusCreated, note)
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.NoteService.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, notes)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.NoteService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, note)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var body notePayload
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	note, err := s.NoteService.Update(r.Context(), chi.URLParam(r, "id"), body.Text)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, note)
}
