package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/kmazurov/fhmp/internal/services"
)

// Server wires the HTTP surface to the services. The UI is an external
// collaborator: everything here speaks JSON.
type Server struct {
	NoteService   services.NoteService
	DraftService  services.DraftService
	ReviewService services.ReviewService
	ConfigService services.ConfigService
	SyncService   services.SyncService
	PeerService   services.PeerService

	// AllowOrigin is handed to the CORS layer on the peer sync endpoints so
	// browser clients on other origins can push and pull.
	AllowOrigin string

	// Ready reports whether the storage layer is reachable.
	Ready func(r *http.Request) error
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Post("/notes", s.handleCreateNote)
	r.Get("/notes", s.handleListNotes)
	r.Get("/notes/{id}", s.handleGetNote)
	r.Put("/notes/{id}", s.handleUpdateNote)
	r.Post("/notes/{id}/review", s.handleReviewNote)

	r.Get("/review/queue", s.handleReviewQueue)
	r.Get("/review/random", s.handleRandomNotes)

	r.Put("/drafts", s.handleSaveDraft)
	r.Get("/drafts", s.handleGetDraft)
	r.Delete("/drafts", s.handleDropDraft)
	r.Put("/drafts/{id}", s.handleSaveDraft)
	r.Get("/drafts/{id}", s.handleGetDraft)
	r.Delete("/drafts/{id}", s.handleDropDraft)

	r.Get("/config", s.handleGetConfig)
	r.Put("/config", s.handleSaveConfig)

	r.Route("/sync", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{s.AllowOrigin},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}))
		r.Post("/push", s.handleSyncPush)
		r.Post("/pull", s.handleSyncPull)
		// Peer side of the protocol. "push" and "pull" are reserved route
		// names and cannot be used as client keys.
		r.Post("/{key}", s.handlePeerPush)
		r.Get("/{key}", s.handlePeerPull)
	})

	return r
}
