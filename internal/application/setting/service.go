// Package setting exposes the typed settings store to the interface layer.
package setting

import (
	"context"
	"fmt"

	"loreforge/internal/domain/setting"
	"loreforge/internal/shared/errors"
	"loreforge/internal/shared/logger"
)

type Service struct {
	repo   setting.Repository
	logger logger.Interface
}

func NewService(repo setting.Repository, log logger.Interface) *Service {
	return &Service{repo: repo, logger: log}
}

// Get returns one setting with its value decoded per its data-type tag.
func (s *Service) Get(ctx context.Context, key string) (*SettingResponse, error) {
	entry, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.toResponse(entry)
}

// GetAll returns every stored setting, values decoded.
func (s *Service) GetAll(ctx context.Context) ([]SettingResponse, error) {
	entries, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]SettingResponse, 0, len(entries))
	for _, entry := range entries {
		resp, err := s.toResponse(entry)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// Update upserts a setting by key, re-encoding the typed value.
func (s *Service) Update(ctx context.Context, req UpdateSettingRequest) (*SettingResponse, error) {
	entry, err := setting.NewSetting(req.Key, req.Value, setting.ValueType(req.ValueType), req.Description)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.repo.Upsert(ctx, entry); err != nil {
		s.logger.Errorw("failed to upsert setting", "key", req.Key, "error", err)
		return nil, err
	}

	s.logger.Infow("setting updated", "key", req.Key, "value_type", req.ValueType)
	return s.toResponse(entry)
}

func (s *Service) toResponse(entry *setting.Setting) (*SettingResponse, error) {
	value, err := entry.TypedValue()
	if err != nil {
		// Stored data that fails its own declared type is corruption,
		// surfaced rather than coerced.
		return nil, fmt.Errorf("setting %q: %w", entry.Key(), err)
	}
	return &SettingResponse{
		Key:         entry.Key(),
		Value:       value,
		ValueType:   string(entry.ValueType()),
		Description: entry.Description(),
		UpdatedAt:   entry.UpdatedAt(),
	}, nil
}
