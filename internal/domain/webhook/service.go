package webhook

import (
	"context"

	"homekeeper/internal/pkg/logger"
	"homekeeper/internal/pkg/validator"
)

// Service manages per-user webhook destinations.
type Service struct {
	configs *ConfigRepository
}

func NewService(configs *ConfigRepository) *Service {
	return &Service{configs: configs}
}

func (s *Service) GetConfig(ctx context.Context, userID string) (*Config, error) {
	return s.configs.Get(ctx, userID)
}

func (s *Service) UpdateConfig(ctx context.Context, userID string, req *UpdateConfigRequest) (*Config, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	cfg := &Config{NewItemURL: req.NewItemURL}
	if err := s.configs.Put(ctx, userID, cfg); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Webhook config updated", "user_id", userID, "enabled", cfg.NewItemURL != "")
	return cfg, nil
}
