package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kmazurov/fhmp/internal/logger"
	"github.com/kmazurov/fhmp/internal/models"
)

// Client side: reconcile the local store with the configured peer.

func (s *Server) handleSyncPush(w http.ResponseWriter, r *http.Request) {
	if err := s.SyncService.Push(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSyncPull(w http.ResponseWriter, r *http.Request) {
	if err := s.SyncService.Pull(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Peer side: accept pushes from and serve pulls to remote clients,
// namespaced by their client key.

func (s *Server) handlePeerPush(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	key := chi.URLParam(r, "key")

	var payload models.SyncPayload
	if err := decodeJSON(r, &payload); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.PeerService.Store(r.Context(), key, payload); err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("peer push accepted: key=%s", key)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePeerPull(w http.ResponseWriter, r *http.Request) {
	payload, err := s.PeerService.Fetch(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, payload)
}
