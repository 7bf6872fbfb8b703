// Package review holds the session-local review queue. The queue is never
// persisted: every review session re-fetches due notes from the store, so
// notes skipped in one session come back, freshly shuffled, in the next.
package review

import (
	"context"

	"github.com/kmazurov/fhmp/internal/models"
	"github.com/kmazurov/fhmp/internal/services"
)

// Queue presents one note at a time from a fetched batch. Only the front
// note is ever acted on; skipping drops it from this session outright
// instead of cycling it to the back.
type Queue struct {
	notes   []models.Note
	reviews services.ReviewService
}

// NewQueue wraps an already-fetched batch of notes.
func NewQueue(notes []models.Note, reviews services.ReviewService) *Queue {
	return &Queue{notes: notes, reviews: reviews}
}

// Len returns how many notes remain in this session.
func (q *Queue) Len() int {
	return len(q.notes)
}

// Current returns the front note, or nil when the session is done.
func (q *Queue) Current() *models.Note {
	if len(q.notes) == 0 {
		return nil
	}
	return &q.notes[0]
}

// Skip drops the front note without recording anything.
func (q *Queue) Skip() {
	if len(q.notes) > 0 {
		q.notes = q.notes[1:]
	}
}

// Record applies the outcome to the front note and drops it from the
// session. The note keeps its place on failure so the outcome can be
// retried.
func (q *Queue) Record(ctx context.Context, result models.ReviewResult) error {
	current := q.Current()
	if current == nil {
		return nil
	}
	if _, err := q.reviews.AddReview(ctx, current.ID, result); err != nil {
		return err
	}
	q.Skip()
	return nil
}
