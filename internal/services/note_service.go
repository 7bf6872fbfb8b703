package services

import (
	"context"
	"time"

	"github.com/kmazurov/fhmp/internal/errors"
	"github.com/kmazurov/fhmp/internal/logger"
	"github.com/kmazurov/fhmp/internal/models"
	"github.com/kmazurov/fhmp/internal/repository"
)

// NoteService handles note creation and editing
type NoteService interface {
	Create(ctx context.Context, text string) (*models.Note, error)
	Get(ctx context.Context, id string) (*models.Note, error)
	List(ctx context.Context) ([]models.Note, error)
	Update(ctx context.Context, id, text string) (*models.Note, error)
}

type noteService struct {
	notes  repository.NoteRepository
	drafts repository.DraftRepository
}

// NewNoteService creates a new NoteService
func NewNoteService(notes repository.NoteRepository, drafts repository.DraftRepository) NoteService {
	return &noteService{notes: notes, drafts: drafts}
}

func (s *noteService) Create(ctx context.Context, text string) (*models.Note, error) {
	log := logger.FromContext(ctx)

	if text == "" {
		return nil, errors.NewValidationError("text", "cannot be empty")
	}

	now := time.Now().UTC()
	note := models.Note{
		ID:   models.NewNoteID(now),
		Text: text,
		// A fresh note is due for review immediately.
		LastReview: now,
		NextReview: now,
		Ver:        models.NewVerToken(now),
	}
	log.Debug("creating note: id=%s", note.ID)

	if err := s.notes.Insert(ctx, note); err != nil {
		log.Error("failed to create note: %v", err)
		return nil, err
	}

	// The note made it to storage; a stale new-note draft is now pointless.
	// Failing to clear it is not worth failing the create over.
	if err := s.drafts.Delete(ctx, ""); err != nil {
		log.Warn("failed to clear new-note draft: %v", err)
	}

	log.Info("note created: id=%s", note.ID)
	return &note, nil
}

func (s *noteService) Get(ctx context.Context, id string) (*models.Note, error) {
	return s.notes.Get(ctx, id)
}

func (s *noteService) List(ctx context.Context) ([]models.Note, error) {
	return s.notes.List(ctx, models.NoteFilter{})
}

func (s *noteService) Update(ctx context.Context, id, text string) (*models.Note, error) {
	log := logger.FromContext(ctx)

	if text == "" {
		return nil, errors.NewValidationError("text", "cannot be empty")
	}

	// Edits replace text and refresh the version token; the review schedule
	// is untouched.
	ver := models.NewVerToken(time.Now().UTC())
	log.Debug("updating note: id=%s, ver=%s", id, ver)

	if err := s.notes.UpdateText(ctx, id, text, ver); err != nil {
		return nil, err
	}
	return s.notes.Get(ctx, id)
}
