package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kmazurov/fhmp/internal/errors"
	"github.com/kmazurov/fhmp/internal/logger"
	"github.com/kmazurov/fhmp/internal/models"
)

func (s *Server) handleReviewQueue(w http.ResponseWriter, r *http.Request) {
	notes, err := s.ReviewService.QueueNotes(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}
	writeJSON(w, r, http.StatusOK, notes)
}

// handleRandomNotes serves the explicit fallback for when nothing is due.
// It is never triggered automatically; the caller asks for it.
func (s *Server) handleRandomNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.ReviewService.RandomNotes(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}
	writeJSON(w, r, http.StatusOK, notes)
}

func (s *Server) handleReviewNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	var body struct {
		Result models.ReviewResult `json:"result"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}
	if !body.Result.Valid() {
		handleError(w, r, errors.NewValidationError("result", `must be "hard" or "easy"`))
		return
	}

	note, err := s.ReviewService.AddReview(r.Context(), id, body.Result)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("note reviewed: id=%s, result=%s", id, body.Result)
	writeJSON(w, r, http.StatusOK, note)
}
