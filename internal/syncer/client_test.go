package syncer_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmazurov/fhmp/internal/models"
	"github.com/kmazurov/fhmp/internal/syncer"
)

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "http://peer:4444/abc", syncer.Endpoint("http://peer:4444", "abc"))
	assert.Equal(t, "http://peer:4444/abc", syncer.Endpoint("http://peer:4444/", "abc"))
}

func samplePayload() models.SyncPayload {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return models.SyncPayload{
		Notes: []models.Note{
			{ID: "n1", Text: "front\n----\nback", LastReview: now, NextReview: now.AddDate(0, 0, 3), Ver: "v1"},
		},
		Reviews: []models.Review{
			{NoteID: "n1", Time: now, Result: models.ReviewEasy},
		},
	}
}

func TestClient_Push(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := syncer.New()
	payload := samplePayload()
	require.NoError(t, c.Push(context.Background(), srv.URL, "my-key", payload))

	assert.Equal(t, "/my-key", gotPath)
	assert.Equal(t, "application/json", gotContentType)

	var sent models.SyncPayload
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	require.Len(t, sent.Notes, 1)
	assert.Equal(t, "n1", sent.Notes[0].ID)
	require.Len(t, sent.Reviews, 1)
	assert.Equal(t, models.ReviewEasy, sent.Reviews[0].Result)
}

func TestClient_PushRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown key", http.StatusForbidden)
	}))
	defer srv.Close()

	c := syncer.New()
	err := c.Push(context.Background(), srv.URL, "my-key", samplePayload())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "unknown key")
}

func TestClient_Pull(t *testing.T) {
	want := samplePayload()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/my-key", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	c := syncer.New()
	got, err := c.Pull(context.Background(), srv.URL, "my-key")
	require.NoError(t, err)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, want.Notes[0].ID, got.Notes[0].ID)
	assert.True(t, want.Notes[0].NextReview.Equal(got.Notes[0].NextReview))
	require.Len(t, got.Reviews, 1)
	assert.Equal(t, want.Reviews[0].NoteID, got.Reviews[0].NoteID)
}

func TestClient_PullRejectsUnknownFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"notes":[],"reviews":[],"surprise":true}`)
	}))
	defer srv.Close()

	c := syncer.New()
	_, err := c.Pull(context.Background(), srv.URL, "my-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed sync payload")
}

func TestClient_PullNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := syncer.New()
	_, err := c.Pull(context.Background(), srv.URL, "my-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
