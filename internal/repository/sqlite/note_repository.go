package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	apperrors "github.com/kmazurov/fhmp/internal/errors"
	"github.com/kmazurov/fhmp/internal/logger"
	"github.com/kmazurov/fhmp/internal/models"
	"github.com/kmazurov/fhmp/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type noteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new NoteRepository implementation
func NewNoteRepository(db *sql.DB) repository.NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Insert(ctx context.Context, n models.Note) error {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("inserting note: id=%s", n.ID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO notes (id, text, last_review, next_review, ver)
VALUES (?, ?, ?, ?, ?)
`, n.ID, n.Text, n.LastReview, n.NextReview, n.Ver)
	if err != nil {
		log.Error("failed to insert note: %v", err)
		return apperrors.NewWriteFailedError("note", err)
	}
	return nil
}

func (r *noteRepository) Get(ctx context.Context, id string) (*models.Note, error) {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("getting note: id=%s", id)

	var n models.Note
	err := r.db.QueryRowContext(ctx, `
SELECT id, text, last_review, next_review, ver
FROM notes
WHERE id = ?
`, id).Scan(&n.ID, &n.Text, &n.LastReview, &n.NextReview, &n.Ver)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("note not found: id=%s", id)
		return nil, apperrors.NewNotFoundError("note", id)
	}
	if err != nil {
		log.Error("failed to get note: %v", err)
		return nil, err
	}
	return &n, nil
}

func (r *noteRepository) List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("listing notes: due_before=%v, by_last_review=%v, limit=%d",
		filter.DueBefore, filter.OrderByLastReview, filter.Limit)

	query := sqlBuilder.Select("id", "text", "last_review", "next_review", "ver").From("notes")

	if filter.DueBefore != nil {
		query = query.Where(squirrel.Lt{"next_review": filter.DueBefore.UTC()})
	}
	if filter.OrderByLastReview {
		query = query.OrderBy("last_review ASC")
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list notes: %v", err)
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Text, &n.LastReview, &n.NextReview, &n.Ver); err != nil {
			log.Error("failed to scan note row: %v", err)
			return nil, err
		}
		notes = append(notes, n)
	}
	log.Debug("listed %d notes", len(notes))
	return notes, rows.Err()
}

func (r *noteRepository) UpdateText(ctx context.Context, id, text, ver string) error {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("updating note text: id=%s, ver=%s", id, ver)

	res, err := r.db.ExecContext(ctx, `
UPDATE notes SET text = ?, ver = ?
WHERE id = ?
`, text, ver, id)
	if err != nil {
		log.Error("failed to update note: %v", err)
		return apperrors.NewWriteFailedError("note", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Debug("note not found for update: id=%s", id)
		return apperrors.NewNotFoundError("note", id)
	}
	return nil
}

func (r *noteRepository) Reschedule(ctx context.Context, id string, lastReview, nextReview time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("rescheduling note: id=%s, next_review=%s", id, nextReview.Format(time.RFC3339))

	// last_review and next_review always change as a pair.
	res, err := r.db.ExecContext(ctx, `
UPDATE notes SET last_review = ?, next_review = ?
WHERE id = ?
`, lastReview, nextReview, id)
	if err != nil {
		log.Error("failed to reschedule note: %v", err)
		return apperrors.NewWriteFailedError("note", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("note", id)
	}
	return nil
}

func (r *noteRepository) Due(ctx context.Context, now time.Time, limit int) ([]models.Note, error) {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("fetching due notes: limit=%d", limit)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, text, last_review, next_review, ver
FROM notes
WHERE next_review < ?
ORDER BY RANDOM()
LIMIT ?
`, now.UTC(), limit)
	if err != nil {
		log.Error("failed to query due notes: %v", err)
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Text, &n.LastReview, &n.NextReview, &n.Ver); err != nil {
			log.Error("failed to scan note row: %v", err)
			return nil, err
		}
		notes = append(notes, n)
	}
	log.Debug("found %d due notes", len(notes))
	return notes, rows.Err()
}

func (r *noteRepository) Upsert(ctx context.Context, n models.Note) error {
	log := logger.FromContext(ctx).WithPrefix("note_repo")
	log.Debug("upserting note: id=%s, ver=%s", n.ID, n.Ver)

	// Sync pull semantics: the incoming record unconditionally replaces any
	// local record with the same id. No field-level or version-based merge.
	_, err := r.db.ExecContext(ctx, `
INSERT INTO notes (id, text, last_review, next_review, ver)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    text = excluded.text,
    last_review = excluded.last_review,
    next_review = excluded.next_review,
    ver = excluded.ver
`, n.ID, n.Text, n.LastReview, n.NextReview, n.Ver)
	if err != nil {
		log.Error("failed to upsert note: %v", err)
		return apperrors.NewWriteFailedError("note", err)
	}
	return nil
}
