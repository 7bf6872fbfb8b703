package sqlite

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/kmazurov/fhmp/internal/errors"
	"github.com/kmazurov/fhmp/internal/logger"
	"github.com/kmazurov/fhmp/internal/models"
	"github.com/kmazurov/fhmp/internal/repository"
)

type draftRepository struct {
	db *sql.DB
}

// NewDraftRepository creates a new DraftRepository implementation
func NewDraftRepository(db *sql.DB) repository.DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Upsert(ctx context.Context, d models.Draft) error {
	log := logger.FromContext(ctx).WithPrefix("draft_repo")
	log.Debug("saving draft: note_id=%q, len=%d", d.NoteID, len(d.Text))

	// One draft per note id; the empty id is the new-note slot.
	_, err := r.db.ExecContext(ctx, `
INSERT INTO drafts (note_id, text, saved_at)
VALUES (?, ?, ?)
ON CONFLICT(note_id) DO UPDATE SET
    text = excluded.text,
    saved_at = excluded.saved_at
`, d.NoteID, d.Text, d.SavedAt)
	if err != nil {
		log.Error("failed to save draft: %v", err)
		return apperrors.NewWriteFailedError("draft", err)
	}
	return nil
}

func (r *draftRepository) Get(ctx context.Context, noteID string) (*models.Draft, error) {
	log := logger.FromContext(ctx).WithPrefix("draft_repo")
	log.Debug("getting draft: note_id=%q", noteID)

	var d models.Draft
	err := r.db.QueryRowContext(ctx, `
SELECT note_id, text, saved_at
FROM drafts
WHERE note_id = ?
`, noteID).Scan(&d.NoteID, &d.Text, &d.SavedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no draft for note_id=%q", noteID)
		return nil, apperrors.NewNotFoundError("draft", noteID)
	}
	if err != nil {
		log.Error("failed to get draft: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *draftRepository) Delete(ctx context.Context, noteID string) error {
	log := logger.FromContext(ctx).WithPrefix("draft_repo")
	log.Debug("dropping draft: note_id=%q", noteID)

	// Deleting an absent draft is a no-op.
	_, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE note_id = ?`, noteID)
	if err != nil {
		log.Error("failed to drop draft: %v", err)
		return apperrors.NewWriteFailedError("draft", err)
	}
	return nil
}
