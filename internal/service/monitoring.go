package service

import (
	"context"

	"cryosure/internal/dashboard"
)

type MonitoringService struct {
	store  *dashboard.Store
	poller *SensorPoller
}

func NewMonitoringService(store *dashboard.Store, poller *SensorPoller) *MonitoringService {
	return &MonitoringService{store: store, poller: poller}
}

// GetState returns a copy of the current view model.
func (s *MonitoringService) GetState(ctx context.Context) dashboard.State {
	return s.store.State()
}

// SwitchView changes the screen. Entering monitoring starts the poller and
// leaving it stops the poller.
func (s *MonitoringService) SwitchView(ctx context.Context, view dashboard.View) (dashboard.State, error) {
	if view == dashboard.ViewConfig {
		s.poller.Deactivate()
	}
	st, err := s.store.Dispatch(dashboard.SwitchView{View: view})
	if err != nil {
		return st, err
	}
	if view == dashboard.ViewMonitoring {
		s.poller.Activate()
	}
	return s.store.State(), nil
}

// Refresh performs an immediate fetch outside the timer.
func (s *MonitoringService) Refresh(ctx context.Context) (dashboard.State, error) {
	_, err := s.poller.Fetch(ctx)
	return s.store.State(), err
}

func (s *MonitoringService) Subscribe() (<-chan dashboard.State, func()) {
	return s.store.Subscribe()
}
