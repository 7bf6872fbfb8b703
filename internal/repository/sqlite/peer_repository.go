package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	apperrors "github.com/kmazurov/fhmp/internal/errors"
	"github.com/kmazurov/fhmp/internal/logger"
	"github.com/kmazurov/fhmp/internal/models"
	"github.com/kmazurov/fhmp/internal/repository"
)

type peerRepository struct {
	db *sql.DB
}

// NewPeerRepository creates a new PeerRepository implementation
func NewPeerRepository(db *sql.DB) repository.PeerRepository {
	return &peerRepository{db: db}
}

// reviewKey builds the informal identity of a review for upserts: reviews
// are never addressed individually, so note id plus timestamp is enough.
func reviewKey(rev models.Review) string {
	return rev.NoteID + "/" + rev.Time.UTC().Format(time.RFC3339Nano)
}

func (r *peerRepository) Put(ctx context.Context, key string, payload models.SyncPayload) error {
	log := logger.FromContext(ctx).WithPrefix("peer_repo")
	log.Debug("storing pushed payload: key=%s, notes=%d, reviews=%d",
		key, len(payload.Notes), len(payload.Reviews))

	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, n := range payload.Notes {
			blob, err := json.Marshal(n)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `
INSERT INTO peer_notes (key, id, json) VALUES (?, ?, ?)
ON CONFLICT(key, id) DO UPDATE SET json = excluded.json
`, key, n.ID, string(blob)); err != nil {
				return err
			}
		}
		for _, rev := range payload.Reviews {
			blob, err := json.Marshal(rev)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `
INSERT INTO peer_reviews (key, id, json) VALUES (?, ?, ?)
ON CONFLICT(key, id) DO UPDATE SET json = excluded.json
`, key, reviewKey(rev), string(blob)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to store pushed payload: %v", err)
		return apperrors.NewWriteFailedError("peer payload", err)
	}
	return nil
}

func (r *peerRepository) Get(ctx context.Context, key string) (models.SyncPayload, error) {
	log := logger.FromContext(ctx).WithPrefix("peer_repo")
	log.Debug("fetching stored payload: key=%s", key)

	payload := models.SyncPayload{
		Notes:   []models.Note{},
		Reviews: []models.Review{},
	}

	rows, err := r.db.QueryContext(ctx, `SELECT json FROM peer_notes WHERE key = ?`, key)
	if err != nil {
		log.Error("failed to query peer notes: %v", err)
		return payload, err
	}
	defer rows.Close()
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return payload, err
		}
		var n models.Note
		if err := json.Unmarshal([]byte(blob), &n); err != nil {
			log.Error("corrupt peer note for key=%s: %v", key, err)
			return payload, err
		}
		payload.Notes = append(payload.Notes, n)
	}
	if err := rows.Err(); err != nil {
		return payload, err
	}

	revRows, err := r.db.QueryContext(ctx, `SELECT json FROM peer_reviews WHERE key = ?`, key)
	if err != nil {
		log.Error("failed to query peer reviews: %v", err)
		return payload, err
	}
	defer revRows.Close()
	for revRows.Next() {
		var blob string
		if err := revRows.Scan(&blob); err != nil {
			return payload, err
		}
		var rev models.Review
		if err := json.Unmarshal([]byte(blob), &rev); err != nil {
			log.Error("corrupt peer review for key=%s: %v", key, err)
			return payload, err
		}
		payload.Reviews = append(payload.Reviews, rev)
	}

	log.Debug("stored payload: key=%s, notes=%d, reviews=%d", key, len(payload.Notes), len(payload.Reviews))
	return payload, revRows.Err()
}
