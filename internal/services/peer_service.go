package services

import (
	"context"

	apperrors "github.com/kmazurov/fhmp/internal/errors"
	"github.com/kmazurov/fhmp/internal/logger"
	"github.com/kmazurov/fhmp/internal/models"
	"github.com/kmazurov/fhmp/internal/repository"
)

// PeerService is the server half of the sync protocol: it stores payloads
// pushed by remote clients and serves them back, namespaced by client key.
type PeerService interface {
	Store(ctx context.Context, key string, payload models.SyncPayload) error
	Fetch(ctx context.Context, key string) (models.SyncPayload, error)
}

type peerService struct {
	peers repository.PeerRepository
}

// NewPeerService creates a new PeerService
func NewPeerService(peers repository.PeerRepository) PeerService {
	return &peerService{peers: peers}
}

func (s *peerService) Store(ctx context.Context, key string, payload models.SyncPayload) error {
	log := logger.FromContext(ctx)

	if key == "" {
		return apperrors.NewValidationError("key", "cannot be empty")
	}
	for _, n := range payload.Notes {
		if n.ID == "" {
			return apperrors.NewValidationError("notes", "every note needs an id")
		}
	}
	for _, r := range payload.Reviews {
		if r.NoteID == "" || !r.Result.Valid() {
			return apperrors.NewValidationError("reviews", "every review needs a note id and a hard/easy result")
		}
	}

	if err := s.peers.Put(ctx, key, payload); err != nil {
		return err
	}
	log.Info("stored payload for key=%s: %d notes, %d reviews", key, len(payload.Notes), len(payload.Reviews))
	return nil
}

func (s *peerService) Fetch(ctx context.Context, key string) (models.SyncPayload, error) {
	if key == "" {
		return models.SyncPayload{}, apperrors.NewValidationError("key", "cannot be empty")
	}
	return s.peers.Get(ctx, key)
}
