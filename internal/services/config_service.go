package services

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/kmazurov/fhmp/internal/errors"
	"github.com/kmazurov/fhmp/internal/logger"
	"github.com/kmazurov/fhmp/internal/models"
	"github.com/kmazurov/fhmp/internal/repository"
)

// ConfigService handles the stored application configuration
type ConfigService interface {
	Load(ctx context.Context) (models.AppConfig, error)
	Save(ctx context.Context, cfg models.AppConfig) error
}

type configService struct {
	config repository.ConfigRepository
}

// NewConfigService creates a new ConfigService
func NewConfigService(config repository.ConfigRepository) ConfigService {
	return &configService{config: config}
}

// Load returns the stored configuration, falling back to defaults before the
// first save. A missing client key is generated and persisted so the sync
// namespace stays stable across sessions.
func (s *configService) Load(ctx context.Context) (models.AppConfig, error) {
	log := logger.FromContext(ctx)

	stored, err := s.config.Load(ctx)
	switch {
	case apperrors.IsNotFound(err):
		log.Debug("no stored config, using defaults")
		cfg := models.DefaultAppConfig()
		stored = &cfg
	case err != nil:
		return models.AppConfig{}, err
	}

	if stored.ClientKey == "" {
		stored.ClientKey = uuid.NewString()
		log.Info("generated client key: %s", stored.ClientKey)
		if err := s.config.Save(ctx, *stored); err != nil {
			return models.AppConfig{}, err
		}
	}
	return *stored, nil
}

func (s *configService) Save(ctx context.Context, cfg models.AppConfig) error {
	if cfg.DraftSaveTimeoutMS <= 0 {
		return apperrors.NewValidationError("draftSaveTimeout", "must be positive")
	}
	if cfg.QueueLimit <= 0 {
		return apperrors.NewValidationError("queueLimit", "must be positive")
	}
	return s.config.Save(ctx, cfg)
}
