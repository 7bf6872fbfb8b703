package repository

import (
	"context"
	"time"

	"github.com/kmazurov/fhmp/internal/models"
)

// NoteRepository handles note data access
type NoteRepository interface {
	Insert(ctx context.Context, note models.Note) error
	Get(ctx context.Context, id string) (*models.Note, error)
	List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	UpdateText(ctx context.Context, id, text, ver string) error
	Reschedule(ctx context.Context, id string, lastReview, nextReview time.Time) error
	Due(ctx context.Context, now time.Time, limit int) ([]models.Note, error)
	Upsert(ctx context.Context, note models.Note) error
}

// DraftRepository handles draft data access. Drafts are keyed by the owning
// note id, with the empty string reserved for the new-note slot; saves are
// upserts, never appends.
type DraftRepository interface {
	Upsert(ctx context.Context, draft models.Draft) error
	Get(ctx context.Context, noteID string) (*models.Draft, error)
	Delete(ctx context.Context, noteID string) error
}

// ReviewRepository handles the append-only review log
type ReviewRepository interface {
	Insert(ctx context.Context, review models.Review) error
	List(ctx context.Context) ([]models.Review, error)
	Upsert(ctx context.Context, review models.Review) error
}

// ConfigRepository handles the singleton configuration record
type ConfigRepository interface {
	Load(ctx context.Context) (*models.AppConfig, error)
	Save(ctx context.Context, cfg models.AppConfig) error
}

// PeerRepository stores sync payloads pushed by remote clients, namespaced
// by their client key. It backs the server side of the sync protocol.
type PeerRepository interface {
	Put(ctx context.Context, key string, payload models.SyncPayload) error
	Get(ctx context.Context, key string) (models.SyncPayload, error)
}
