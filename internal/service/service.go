package service

import (
	"context"
	"time"

	"cryosure/internal/client"
	"cryosure/internal/dashboard"
	"cryosure/internal/logger"
	"cryosure/internal/models"
	"cryosure/internal/repository"
)

// Submitter posts a draft to the remote write endpoint.
type Submitter interface {
	Submit(ctx context.Context, draft models.ConfigDraft) error
}

// Fetcher reads the latest sensor batch from the remote read endpoint.
type Fetcher interface {
	FetchLatest(ctx context.Context) (client.Batch, error)
}

// Wizard drives the multi-step configuration form.
type Wizard interface {
	EditFields(ctx context.Context, fields map[string]string) (dashboard.State, error)
	SelectStorageType(ctx context.Context, name string) (dashboard.State, error)
	SelectTemperaturePreset(ctx context.Context, name string) (dashboard.State, error)
	Next(ctx context.Context) (dashboard.State, error)
	Prev(ctx context.Context) (dashboard.State, error)
	Submit(ctx context.Context) (dashboard.State, error)
	DismissMessage(ctx context.Context) dashboard.State
}

// Monitoring exposes the view model and the live sensor feed.
type Monitoring interface {
	GetState(ctx context.Context) dashboard.State
	SwitchView(ctx context.Context, view dashboard.View) (dashboard.State, error)
	Refresh(ctx context.Context) (dashboard.State, error)
	Subscribe() (<-chan dashboard.State, func())
}

// History exposes the locally recorded configurations.
type History interface {
	List(ctx context.Context, f ConfigFilter) ([]models.SavedConfig, error)
	Active(ctx context.Context) (models.ActiveThresholds, error)
}

// Catalog exposes the static presets.
type Catalog interface {
	StorageTypes() []models.StorageTypePreset
	TemperaturePresets() []models.TemperaturePreset
}

type Service struct {
	Wizard
	Monitoring
	History
	Catalog

	poller *SensorPoller
}

// Deps are the collaborators NewService wires together.
type Deps struct {
	Repos        *repository.Repository
	Store        *dashboard.Store
	Submitter    Submitter
	Fetcher      Fetcher
	PollInterval time.Duration
	Log          *logger.Logger
}

func NewService(d Deps) *Service {
	poller := NewSensorPoller(d.Store, d.Fetcher, d.PollInterval, d.Log)
	return &Service{
		Wizard:     NewWizardService(d.Store, d.Submitter, d.Repos.ConfigRepo, d.Repos.ActiveRepo, poller, d.Log),
		Monitoring: NewMonitoringService(d.Store, poller),
		History:    NewHistoryService(d.Repos.ConfigRepo, d.Repos.ActiveRepo),
		Catalog:    NewCatalogService(),
		poller:     poller,
	}
}

// Close stops the poller and waits for its goroutine to exit.
func (s *Service) Close() {
	if s.poller != nil {
		s.poller.Shutdown()
	}
}
