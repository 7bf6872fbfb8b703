package sqlite

import (
	"context"
	"database/sql"

	apperrors "github.com/kmazurov/fhmp/internal/errors"
	"github.com/kmazurov/fhmp/internal/logger"
	"github.com/kmazurov/fhmp/internal/models"
	"github.com/kmazurov/fhmp/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Insert(ctx context.Context, rev models.Review) error {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("appending review: note_id=%s, result=%s", rev.NoteID, rev.Result)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO reviews (note_id, reviewed_at, result)
VALUES (?, ?, ?)
`, rev.NoteID, rev.Time, string(rev.Result))
	if err != nil {
		log.Error("failed to append review: %v", err)
		return apperrors.NewWriteFailedError("review", err)
	}
	return nil
}

func (r *reviewRepository) List(ctx context.Context) ([]models.Review, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing reviews")

	rows, err := r.db.QueryContext(ctx, `
SELECT note_id, reviewed_at, result
FROM reviews
ORDER BY reviewed_at ASC
`)
	if err != nil {
		log.Error("failed to list reviews: %v", err)
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var rev models.Review
		var result string
		if err := rows.Scan(&rev.NoteID, &rev.Time, &result); err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		rev.Result = models.ReviewResult(result)
		reviews = append(reviews, rev)
	}
	log.Debug("listed %d reviews", len(reviews))
	return reviews, rows.Err()
}

func (r *reviewRepository) Upsert(ctx context.Context, rev models.Review) error {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("upserting review: note_id=%s, time=%s", rev.NoteID, rev.Time)

	// Reviews are immutable once written; a pulled duplicate of an existing
	// (note, time) entry is simply ignored.
	_, err := r.db.ExecContext(ctx, `
INSERT INTO reviews (note_id, reviewed_at, result)
VALUES (?, ?, ?)
ON CONFLICT(note_id, reviewed_at) DO NOTHING
`, rev.NoteID, rev.Time, string(rev.Result))
	if err != nil {
		log.Error("failed to upsert review: %v", err)
		return apperrors.NewWriteFailedError("review", err)
	}
	return nil
}
