package sqlite

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/kmazurov/fhmp/internal/errors"
	"github.com/kmazurov/fhmp/internal/logger"
	"github.com/kmazurov/fhmp/internal/models"
	"github.com/kmazurov/fhmp/internal/repository"
)

// The config table holds exactly one row with this id.
const configRowID = 0

type configRepository struct {
	db *sql.DB
}

// NewConfigRepository creates a new ConfigRepository implementation
func NewConfigRepository(db *sql.DB) repository.ConfigRepository {
	return &configRepository{db: db}
}

func (r *configRepository) Load(ctx context.Context) (*models.AppConfig, error) {
	log := logger.FromContext(ctx).WithPrefix("config_repo")
	log.Debug("loading config")

	var cfg models.AppConfig
	err := r.db.QueryRowContext(ctx, `
SELECT draft_save_timeout_ms, sync_server_url, client_key, queue_limit
FROM config
WHERE id = ?
`, configRowID).Scan(&cfg.DraftSaveTimeoutMS, &cfg.SyncServerURL, &cfg.ClientKey, &cfg.QueueLimit)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no config saved yet")
		return nil, apperrors.NewNotFoundError("config", configRowID)
	}
	if err != nil {
		log.Error("failed to load config: %v", err)
		return nil, err
	}
	return &cfg, nil
}

func (r *configRepository) Save(ctx context.Context, cfg models.AppConfig) error {
	log := logger.FromContext(ctx).WithPrefix("config_repo")
	log.Debug("saving config: queue_limit=%d, sync=%v", cfg.QueueLimit, cfg.SyncEnabled())

	// Wholesale overwrite of the singleton record.
	_, err := r.db.ExecContext(ctx, `
INSERT INTO config (id, draft_save_timeout_ms, sync_server_url, client_key, queue_limit)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    draft_save_timeout_ms = excluded.draft_save_timeout_ms,
    sync_server_url = excluded.sync_server_url,
    client_key = excluded.client_key,
    queue_limit = excluded.queue_limit
`, configRowID, cfg.DraftSaveTimeoutMS, cfg.SyncServerURL, cfg.ClientKey, cfg.QueueLimit)
	if err != nil {
		log.Error("failed to save config: %v", err)
		return apperrors.NewWriteFailedError("config", err)
	}
	return nil
}
