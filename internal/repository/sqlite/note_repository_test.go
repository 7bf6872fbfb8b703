package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	apperrors "github.com/kmazurov/fhmp/internal/errors"
	"github.com/kmazurov/fhmp/internal/models"
	"github.com/kmazurov/fhmp/internal/repository"
	"github.com/kmazurov/fhmp/internal/repository/sqlite"
	"github.com/kmazurov/fhmp/internal/testutil"
)

type NoteRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.NoteRepository
}

func (s *NoteRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewNoteRepository(s.db)
}

func (s *NoteRepositorySuite) newNote(id string, nextReview time.Time) models.Note {
	return models.Note{
		ID:         id,
		Text:       "question\n----\nanswer",
		LastReview: nextReview.Add(-24 * time.Hour).UTC(),
		NextReview: nextReview.UTC(),
		Ver:        models.NewVerToken(time.Now()),
	}
}

func (s *NoteRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	note := s.newNote("note1", now)
	s.Require().NoError(s.repo.Insert(ctx, note))

	got, err := s.repo.Get(ctx, "note1")
	s.Require().NoError(err)
	s.Assert().Equal(note.ID, got.ID)
	s.Assert().Equal(note.Text, got.Text)
	s.Assert().True(note.LastReview.Equal(got.LastReview))
	s.Assert().True(note.NextReview.Equal(got.NextReview))
	s.Assert().Equal(note.Ver, got.Ver)
}

func (s *NoteRepositorySuite) TestGet_NotFound() {
	_, err := s.repo.Get(context.Background(), "nope")
	s.Require().Error(err)
	s.Assert().True(apperrors.IsNotFound(err))
}

func (s *NoteRepositorySuite) TestUpdateText() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	note := s.newNote("note1", now)
	s.Require().NoError(s.repo.Insert(ctx, note))

	s.Require().NoError(s.repo.UpdateText(ctx, "note1", "edited", "zzzz"))

	got, err := s.repo.Get(ctx, "note1")
	s.Require().NoError(err)
	s.Assert().Equal("edited", got.Text)
	s.Assert().Equal("zzzz", got.Ver)
	// Edits never touch the schedule.
	s.Assert().True(note.LastReview.Equal(got.LastReview))
	s.Assert().True(note.NextReview.Equal(got.NextReview))
}

func (s *NoteRepositorySuite) TestUpdateText_NotFound() {
	err := s.repo.UpdateText(context.Background(), "ghost", "text", "ver")
	s.Require().Error(err)
	s.Assert().True(apperrors.IsNotFound(err))
}

func (s *NoteRepositorySuite) TestReschedule() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	s.Require().NoError(s.repo.Insert(ctx, s.newNote("note1", now)))

	last := now.Add(time.Hour)
	next := now.Add(49 * time.Hour)
	s.Require().NoError(s.repo.Reschedule(ctx, "note1", last, next))

	got, err := s.repo.Get(ctx, "note1")
	s.Require().NoError(err)
	s.Assert().True(last.Equal(got.LastReview))
	s.Assert().True(next.Equal(got.NextReview))
}

func (s *NoteRepositorySuite) TestDue() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	s.Require().NoError(s.repo.Insert(ctx, s.newNote("due1", now.Add(-time.Hour))))
	s.Require().NoError(s.repo.Insert(ctx, s.newNote("due2", now.Add(-time.Minute))))
	s.Require().NoError(s.repo.Insert(ctx, s.newNote("later", now.Add(time.Hour))))

	due, err := s.repo.Due(ctx, now, 10)
	s.Require().NoError(err)
	s.Require().Len(due, 2)
	for _, n := range due {
		s.Assert().NotEqual("later", n.ID)
	}
}

func (s *NoteRepositorySuite) TestDue_Limit() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	for _, id := range []string{"a", "b", "c"} {
		s.Require().NoError(s.repo.Insert(ctx, s.newNote(id, now.Add(-time.Hour))))
	}

	due, err := s.repo.Due(ctx, now, 2)
	s.Require().NoError(err)
	s.Assert().Len(due, 2)
}

func (s *NoteRepositorySuite) TestList_OrderedByLastReview() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	oldest := s.newNote("oldest", now)
	oldest.LastReview = now.Add(-72 * time.Hour)
	newest := s.newNote("newest", now)
	newest.LastReview = now.Add(-time.Hour)
	middle := s.newNote("middle", now)
	middle.LastReview = now.Add(-48 * time.Hour)

	for _, n := range []models.Note{newest, oldest, middle} {
		s.Require().NoError(s.repo.Insert(ctx, n))
	}

	notes, err := s.repo.List(ctx, models.NoteFilter{OrderByLastReview: true})
	s.Require().NoError(err)
	s.Require().Len(notes, 3)
	s.Assert().Equal("oldest", notes[0].ID)
	s.Assert().Equal("middle", notes[1].ID)
	s.Assert().Equal("newest", notes[2].ID)
}

func (s *NoteRepositorySuite) TestList_DueBefore() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	s.Require().NoError(s.repo.Insert(ctx, s.newNote("due", now.Add(-time.Hour))))
	s.Require().NoError(s.repo.Insert(ctx, s.newNote("later", now.Add(time.Hour))))

	notes, err := s.repo.List(ctx, models.NoteFilter{DueBefore: &now})
	s.Require().NoError(err)
	s.Require().Len(notes, 1)
	s.Assert().Equal("due", notes[0].ID)
}

func (s *NoteRepositorySuite) TestUpsert_OverwritesById() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	local := s.newNote("shared", now)
	s.Require().NoError(s.repo.Insert(ctx, local))

	remote := local
	remote.Text = "remote wins"
	remote.NextReview = now.Add(8 * 24 * time.Hour)
	remote.Ver = "remote-ver"
	s.Require().NoError(s.repo.Upsert(ctx, remote))

	got, err := s.repo.Get(ctx, "shared")
	s.Require().NoError(err)
	s.Assert().Equal("remote wins", got.Text)
	s.Assert().Equal("remote-ver", got.Ver)
	s.Assert().True(remote.NextReview.Equal(got.NextReview))

	notes, err := s.repo.List(ctx, models.NoteFilter{})
	s.Require().NoError(err)
	s.Assert().Len(notes, 1, "upsert must overwrite, not duplicate")
}

func (s *NoteRepositorySuite) TestUpsert_InsertsNew() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	s.Require().NoError(s.repo.Upsert(ctx, s.newNote("fresh", now)))

	got, err := s.repo.Get(ctx, "fresh")
	s.Require().NoError(err)
	s.Assert().Equal("fresh", got.ID)
}

func TestNoteRepositorySuite(t *testing.T) {
	suite.Run(t, new(NoteRepositorySuite))
}
