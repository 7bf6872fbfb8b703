package services

import (
	"context"
	"time"

	"github.com/kmazurov/fhmp/internal/models"
	"github.com/kmazurov/fhmp/internal/repository"
)

// DraftService handles autosaved note drafts. The empty note id addresses
// the draft of a note that has not been created yet.
type DraftService interface {
	Save(ctx context.Context, noteID, text string) error
	Get(ctx context.Context, noteID string) (*models.Draft, error)
	Drop(ctx context.Context, noteID string) error
}

type draftService struct {
	drafts repository.DraftRepository
}

// NewDraftService creates a new DraftService
func NewDraftService(drafts repository.DraftRepository) DraftService {
	return &draftService{drafts: drafts}
}

func (s *draftService) Save(ctx context.Context, noteID, text string) error {
	return s.drafts.Upsert(ctx, models.Draft{
		NoteID:  noteID,
		Text:    text,
		SavedAt: time.Now().UTC(),
	})
}

func (s *draftService) Get(ctx context.Context, noteID string) (*models.Draft, error) {
	return s.drafts.Get(ctx, noteID)
}

func (s *draftService) Drop(ctx context.Context, noteID string) error {
	return s.drafts.Delete(ctx, noteID)
}
