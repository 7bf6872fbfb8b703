package models

import (
	"regexp"
	"time"
)

// Note is a single flashcard. Text holds the question and the answer
// separated by a line of four or more dashes.
type Note struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	LastReview time.Time `json:"lastReview"`
	NextReview time.Time `json:"nextReview"`
	Ver        string    `json:"ver"`
}

// Due reports whether the note should be offered for review at the given time.
func (n Note) Due(now time.Time) bool {
	return n.NextReview.Before(now)
}

var answerSep = regexp.MustCompile(`\n-{4,}\n`)

// Split divides the note text into question and answer on the first line of
// four or more dashes. Notes without a separator have an empty answer.
func (n Note) Split() (question, answer string) {
	parts := answerSep.Split(n.Text, 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return n.Text, ""
}

// Draft is an autosaved snapshot of in-progress note text.
// NoteID is empty for a draft of a note that does not exist yet;
// there is at most one draft per NoteID.
type Draft struct {
	NoteID  string    `json:"noteId"`
	Text    string    `json:"text"`
	SavedAt time.Time `json:"time"`
}

// minUsefulDraftLen is the shortest draft worth offering back to the editor.
const minUsefulDraftLen = 10

// WorthRestoring reports whether the draft is long enough to be useful.
func (d Draft) WorthRestoring() bool {
	return len(d.Text) > minUsefulDraftLen
}

// ReviewResult is the outcome of a single review.
type ReviewResult string

const (
	ReviewHard ReviewResult = "hard"
	ReviewEasy ReviewResult = "easy"
)

// Valid reports whether the result is one of the recognized outcomes.
func (r ReviewResult) Valid() bool {
	return r == ReviewHard || r == ReviewEasy
}

// Review is an append-only log entry. Reviews are never individually
// addressed after creation; (NoteID, Time) serves as an informal key.
type Review struct {
	NoteID string       `json:"note"`
	Time   time.Time    `json:"time"`
	Result ReviewResult `json:"result"`
}

// NoteFilter narrows and orders a note listing. The zero value lists
// everything in storage order.
type NoteFilter struct {
	// DueBefore keeps only notes whose next review is before this instant.
	DueBefore *time.Time
	// OrderByLastReview orders ascending by last review time (oldest first).
	OrderByLastReview bool
	// Limit caps the result; zero means no cap.
	Limit int
}

// SyncPayload is the wire shape exchanged with a sync peer:
// the full local collections of notes and reviews.
type SyncPayload struct {
	Notes   []Note   `json:"notes"`
	Reviews []Review `json:"reviews"`
}

// AppConfig is the singleton configuration record stored alongside the notes.
type AppConfig struct {
	// DraftSaveTimeoutMS is the autosave cadence in milliseconds.
	DraftSaveTimeoutMS int `json:"draftSaveTimeout"`
	// SyncServerURL is the sync peer base URL; empty disables sync.
	SyncServerURL string `json:"syncServerUrl"`
	// ClientKey namespaces this client's data on the sync peer.
	ClientKey string `json:"clientKey"`
	// QueueLimit caps how many due notes a review queue load fetches.
	QueueLimit int `json:"queueLimit"`
}

// DraftSaveInterval returns the autosave cadence as a duration.
func (c AppConfig) DraftSaveInterval() time.Duration {
	return time.Duration(c.DraftSaveTimeoutMS) * time.Millisecond
}

// SyncEnabled reports whether a sync peer is configured.
func (c AppConfig) SyncEnabled() bool {
	return c.SyncServerURL != ""
}

// DefaultAppConfig returns the configuration used before any has been saved.
// ClientKey is left empty; the config service generates one on first load.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DraftSaveTimeoutMS: 4000,
		SyncServerURL:      "",
		ClientKey:          "",
		QueueLimit:         100,
	}
}
