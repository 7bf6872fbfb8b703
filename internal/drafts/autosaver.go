// Package drafts runs the periodic draft autosave loop for an editing
// session. It is the only background activity in the system.
package drafts

import (
	"context"
	"sync"
	"time"

	"github.com/kmazurov/fhmp/internal/logger"
)

// SaveFunc persists one draft snapshot.
type SaveFunc func(ctx context.Context, noteID, text string) error

// finalSaveTimeout bounds the best-effort save performed at shutdown.
const finalSaveTimeout = 2 * time.Second

// Autosaver saves the current editor text on a fixed cadence, but only when
// it changed since the last successful save. A failed save keeps the dirty
// flag set, so the next tick retries naturally.
type Autosaver struct {
	noteID   string
	interval time.Duration
	save     SaveFunc
	log      *logger.Logger

	mu    sync.Mutex
	text  string
	dirty bool
}

// New creates an Autosaver for the note's editing session. An empty noteID
// addresses the new-note draft slot.
func New(noteID string, interval time.Duration, save SaveFunc) *Autosaver {
	return &Autosaver{
		noteID:   noteID,
		interval: interval,
		save:     save,
		log:      logger.Default().WithPrefix("autosave"),
	}
}

// SetText records the latest editor text and marks it unsaved.
func (a *Autosaver) SetText(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.text = text
	a.dirty = true
}

// Saved reports whether the latest text has been persisted.
func (a *Autosaver) Saved() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.dirty
}

// Run loops until ctx is cancelled, then performs one final best-effort
// save. Cancellation is the deterministic end of the editing session.
func (a *Autosaver) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			finalCtx, cancel := context.WithTimeout(context.Background(), finalSaveTimeout)
			a.saveIfDirty(finalCtx)
			cancel()
			return
		case <-ticker.C:
			a.saveIfDirty(ctx)
		}
	}
}

func (a *Autosaver) saveIfDirty(ctx context.Context) {
	a.mu.Lock()
	if !a.dirty {
		a.mu.Unlock()
		return
	}
	text := a.text
	a.mu.Unlock()

	if err := a.save(ctx, a.noteID, text); err != nil {
		// Not fatal: the dirty flag stays set and the next tick retries.
		a.log.Warn("draft save failed: %v", err)
		return
	}

	a.mu.Lock()
	// Only clear when no newer text arrived while saving.
	if a.text == text {
		a.dirty = false
	}
	a.mu.Unlock()
	a.log.Debug("draft saved: note_id=%q, len=%d", a.noteID, len(text))
}
