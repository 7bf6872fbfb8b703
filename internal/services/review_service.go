package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/kmazurov/fhmp/internal/errors"
	"github.com/kmazurov/fhmp/internal/logger"
	"github.com/kmazurov/fhmp/internal/models"
	"github.com/kmazurov/fhmp/internal/repository"
	"github.com/kmazurov/fhmp/internal/scheduler"
)

// ReviewService handles due-note selection and review outcomes
type ReviewService interface {
	QueueNotes(ctx context.Context) ([]models.Note, error)
	RandomNotes(ctx context.Context) ([]models.Note, error)
	AddReview(ctx context.Context, noteID string, result models.ReviewResult) (*models.Note, error)
}

type reviewService struct {
	notes   repository.NoteRepository
	reviews repository.ReviewRepository
	config  ConfigService
}

// NewReviewService creates a new ReviewService
func NewReviewService(notes repository.NoteRepository, reviews repository.ReviewRepository, config ConfigService) ReviewService {
	return &reviewService{notes: notes, reviews: reviews, config: config}
}

// QueueNotes returns the due notes for a review session, already shuffled and
// capped at the configured queue limit.
func (s *reviewService) QueueNotes(ctx context.Context) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	cfg, err := s.config.Load(ctx)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.Due(ctx, time.Now().UTC(), cfg.QueueLimit)
	if err != nil {
		log.Error("failed to fetch due notes: %v", err)
		return nil, err
	}
	log.Debug("review queue loaded: %d notes", len(notes))
	return notes, nil
}

// RandomNotes is the explicit fallback when nothing is due: every note,
// biased toward the stalest by fetching in last-review order, then shuffled
// so repeat sessions do not replay the same sequence.
func (s *reviewService) RandomNotes(ctx context.Context) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	notes, err := s.notes.List(ctx, models.NoteFilter{OrderByLastReview: true})
	if err != nil {
		log.Error("failed to fetch notes: %v", err)
		return nil, err
	}

	rand.Shuffle(len(notes), func(i, j int) {
		notes[i], notes[j] = notes[j], notes[i]
	})
	return notes, nil
}

// AddReview applies a review outcome: the scheduler picks the next interval
// from the planned and elapsed intervals, the note is rescheduled, and the
// outcome is appended to the review log.
func (s *reviewService) AddReview(ctx context.Context, noteID string, result models.ReviewResult) (*models.Note, error) {
	log := logger.FromContext(ctx)

	if !result.Valid() {
		log.Error("unrecognized review result: %q", result)
		return nil, errors.NewInvalidOutcomeError(string(result))
	}

	note, err := s.notes.Get(ctx, noteID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expected := note.NextReview.Sub(note.LastReview)
	actual := now.Sub(note.LastReview)
	if expected < 0 {
		expected = 0
	}
	if actual < 0 {
		actual = 0
	}

	interval, err := scheduler.NextInterval(expected, actual, result)
	if err != nil {
		return nil, err
	}
	log.Debug("review scheduled: id=%s, result=%s, next in %v", noteID, result, interval)

	if err := s.notes.Reschedule(ctx, noteID, now, now.Add(interval)); err != nil {
		return nil, err
	}

	// The reschedule and the log append are not one transaction. If the
	// append fails here the note stays rescheduled with no audit entry; the
	// gap is accepted and surfaced rather than rolled back.
	if err := s.reviews.Insert(ctx, models.Review{NoteID: noteID, Time: now, Result: result}); err != nil {
		log.Error("review log append failed after reschedule: %v", err)
		return nil, err
	}

	note.LastReview = now
	note.NextReview = now.Add(interval)
	log.Info("note reviewed: id=%s, result=%s", noteID, result)
	return note, nil
}
