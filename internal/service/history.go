package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"cryosure/internal/models"
	"cryosure/internal/repository"
)

// ConfigFilter narrows the saved-configuration history.
type ConfigFilter struct {
	From        time.Time // inclusive; zero means no lower bound
	To          time.Time // inclusive; zero means no upper bound
	StorageType string    // case-insensitive, "" for any
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
	ErrNoActiveConfig   = errors.New("no configuration has been saved yet")
)

type HistoryService struct {
	configRepo repository.ConfigRepo
	activeRepo repository.ActiveRepo
}

func NewHistoryService(configRepo repository.ConfigRepo, activeRepo repository.ActiveRepo) *HistoryService {
	return &HistoryService{configRepo: configRepo, activeRepo: activeRepo}
}

func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeFilter(f ConfigFilter) (ConfigFilter, error) {
	out := ConfigFilter{
		From:        normalizeToUTC(f.From),
		To:          normalizeToUTC(f.To),
		StorageType: strings.TrimSpace(f.StorageType),
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return ConfigFilter{}, errInvalidTimeRange
	}
	return out, nil
}

func (s *HistoryService) List(ctx context.Context, f ConfigFilter) ([]models.SavedConfig, error) {
	f, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}
	return s.configRepo.List(ctx, f.From, f.To, f.StorageType)
}

// Active returns the thresholds of the last accepted submission.
func (s *HistoryService) Active(ctx context.Context) (models.ActiveThresholds, error) {
	a, err := s.activeRepo.Load(ctx)
	if err != nil {
		return models.ActiveThresholds{}, err
	}
	if a.ID == 0 {
		return models.ActiveThresholds{}, ErrNoActiveConfig
	}
	return a, nil
}
