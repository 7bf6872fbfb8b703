package services

import (
	"context"

	apperrors "github.com/kmazurov/fhmp/internal/errors"
	"github.com/kmazurov/fhmp/internal/logger"
	"github.com/kmazurov/fhmp/internal/models"
	"github.com/kmazurov/fhmp/internal/repository"
	"github.com/kmazurov/fhmp/internal/syncer"
)

// SyncService handles best-effort reconciliation with the configured peer.
// Each cycle is a full push and a full pull; there is no retry, no delta
// transfer and no rollback on partial failure.
type SyncService interface {
	Push(ctx context.Context) error
	Pull(ctx context.Context) error
}

type syncService struct {
	notes   repository.NoteRepository
	reviews repository.ReviewRepository
	config  ConfigService
	client  *syncer.Client
}

// NewSyncService creates a new SyncService
func NewSyncService(notes repository.NoteRepository, reviews repository.ReviewRepository, config ConfigService, client *syncer.Client) SyncService {
	return &syncService{notes: notes, reviews: reviews, config: config, client: client}
}

// Push sends every local note and review to the peer as one payload.
func (s *syncService) Push(ctx context.Context) error {
	log := logger.FromContext(ctx)

	cfg, err := s.config.Load(ctx)
	if err != nil {
		return err
	}
	if !cfg.SyncEnabled() {
		return apperrors.NewBadRequestError("sync server is not configured")
	}

	notes, err := s.notes.List(ctx, models.NoteFilter{})
	if err != nil {
		return err
	}
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return err
	}

	payload := models.SyncPayload{Notes: notes, Reviews: reviews}
	if err := s.client.Push(ctx, cfg.SyncServerURL, cfg.ClientKey, payload); err != nil {
		log.Warn("push failed: %v", err)
		return apperrors.NewSyncFailedError("push", err)
	}
	log.Info("pushed %d notes, %d reviews", len(notes), len(reviews))
	return nil
}

// Pull fetches the peer's payload and upserts every record by id. Remote
// records overwrite local ones unconditionally; records absent from the
// payload are left alone.
func (s *syncService) Pull(ctx context.Context) error {
	log := logger.FromContext(ctx)

	cfg, err := s.config.Load(ctx)
	if err != nil {
		return err
	}
	if !cfg.SyncEnabled() {
		return apperrors.NewBadRequestError("sync server is not configured")
	}

	payload, err := s.client.Pull(ctx, cfg.SyncServerURL, cfg.ClientKey)
	if err != nil {
		log.Warn("pull failed: %v", err)
		return apperrors.NewSyncFailedError("pull", err)
	}

	for _, note := range payload.Notes {
		if err := s.notes.Upsert(ctx, note); err != nil {
			return err
		}
	}
	for _, review := range payload.Reviews {
		if err := s.reviews.Upsert(ctx, review); err != nil {
			return err
		}
	}

	log.Info("pulled %d notes, %d reviews", len(payload.Notes), len(payload.Reviews))
	return nil
}
