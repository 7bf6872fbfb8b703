package drafts_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmazurov/fhmp/internal/drafts"
)

// saveRecorder collects save calls and can be told to fail.
type saveRecorder struct {
	mu    sync.Mutex
	calls []string
	fail  bool
}

func (r *saveRecorder) save(_ context.Context, _ string, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("disk full")
	}
	r.calls = append(r.calls, text)
	return nil
}

func (r *saveRecorder) setFail(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = fail
}

func (r *saveRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestAutosaver_SavesDirtyText(t *testing.T) {
	rec := &saveRecorder{}
	a := drafts.New("note-1", 10*time.Millisecond, rec.save)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.Run(ctx)
		close(done)
	}()

	a.SetText("drafted text")
	waitFor(t, a.Saved)

	calls := rec.snapshot()
	require.NotEmpty(t, calls)
	assert.Equal(t, "drafted text", calls[len(calls)-1])

	cancel()
	<-done
}

func TestAutosaver_SkipsCleanTicks(t *testing.T) {
	rec := &saveRecorder{}
	a := drafts.New("note-1", 5*time.Millisecond, rec.save)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.Run(ctx)
		close(done)
	}()

	a.SetText("once")
	waitFor(t, a.Saved)

	// Let several ticks pass with nothing new to save.
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, []string{"once"}, rec.snapshot())
}

func TestAutosaver_RetriesAfterFailure(t *testing.T) {
	rec := &saveRecorder{fail: true}
	a := drafts.New("note-1", 10*time.Millisecond, rec.save)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.Run(ctx)
		close(done)
	}()

	a.SetText("keep me")

	// While saves fail the text stays dirty.
	time.Sleep(50 * time.Millisecond)
	assert.False(t, a.Saved())

	rec.setFail(false)
	waitFor(t, a.Saved)
	calls := rec.snapshot()
	require.NotEmpty(t, calls)
	assert.Equal(t, "keep me", calls[len(calls)-1])

	cancel()
	<-done
}

func TestAutosaver_FinalSaveOnCancel(t *testing.T) {
	rec := &saveRecorder{}
	// Interval far longer than the test: only the shutdown save can fire.
	a := drafts.New("note-1", time.Hour, rec.save)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.Run(ctx)
		close(done)
	}()

	a.SetText("last words")
	cancel()
	<-done

	assert.Equal(t, []string{"last words"}, rec.snapshot())
	assert.True(t, a.Saved())
}
