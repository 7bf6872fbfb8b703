package api

import (
	"net/http"

	"github.com/kmazurov/fhmp/internal/logger"
	"github.com/kmazurov/fhmp/internal/models"
)

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.ConfigService.Load(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cfg)
}

func (s *Server) handleSaveConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var cfg models.AppConfig
	if err := decodeJSON(r, &cfg); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ConfigService.Save(r.Context(), cfg); err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("config saved")
	writeJSON(w, r, http.StatusOK, cfg)
}
