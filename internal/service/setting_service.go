package service

import (
	"context"
	"fmt"
	"strings"

	"fleet-route-service/internal/model"
)

type settingStore interface {
	GetByKey(ctx context.Context, key string) (*model.Setting, error)
	List(ctx context.Context) ([]model.Setting, error)
	Upsert(ctx context.Context, key, value string) error
}

type SettingService struct {
	settings settingStore
}

func NewSettingService(settings settingStore) *SettingService {
	return &SettingService{settings: settings}
}

func (s *SettingService) List(ctx context.Context) ([]model.Setting, error) {
	return s.settings.List(ctx)
}

// Save upserts the given key/value pairs. Values are stored as strings; no
// format validation happens here, readers fall back to defaults when a value
// does not parse.
func (s *SettingService) Save(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return fmt.Errorf("%w: no settings given", ErrInvalidInput)
	}
	for key, value := range values {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("%w: empty setting key", ErrInvalidInput)
		}
		if err := s.settings.Upsert(ctx, key, strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return nil
}
