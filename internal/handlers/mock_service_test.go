package handlers

import (
	"context"
	"net/http"

	"cryosure/internal/dashboard"
	"cryosure/internal/models"
	"cryosure/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockWizard struct {
	state dashboard.State
	err   error

	lastFields  map[string]string
	lastName    string
	submitCalls int
	nextCalls   int
	prevCalls   int
}

func (m *mockWizard) EditFields(ctx context.Context, fields map[string]string) (dashboard.State, error) {
	m.lastFields = fields
	return m.state, m.err
}
func (m *mockWizard) SelectStorageType(ctx context.Context, name string) (dashboard.State, error) {
	m.lastName = name
	return m.state, m.err
}
func (m *mockWizard) SelectTemperaturePreset(ctx context.Context, name string) (dashboard.State, error) {
	m.lastName = name
	return m.state, m.err
}
func (m *mockWizard) Next(ctx context.Context) (dashboard.State, error) {
	m.nextCalls++
	return m.state, m.err
}
func (m *mockWizard) Prev(ctx context.Context) (dashboard.State, error) {
	m.prevCalls++
	return m.state, m.err
}
func (m *mockWizard) Submit(ctx context.Context) (dashboard.State, error) {
	m.submitCalls++
	return m.state, m.err
}
func (m *mockWizard) DismissMessage(ctx context.Context) dashboard.State {
	m.state.Message = nil
	return m.state
}

type mockMonitoring struct {
	state     dashboard.State
	err       error
	lastView  dashboard.View
	refreshes int
	updates   chan dashboard.State
	cancelled bool
}

func (m *mockMonitoring) GetState(ctx context.Context) dashboard.State { return m.state }
func (m *mockMonitoring) SwitchView(ctx context.Context, v dashboard.View) (dashboard.State, error) {
	m.lastView = v
	return m.state, m.err
}
func (m *mockMonitoring) Refresh(ctx context.Context) (dashboard.State, error) {
	m.refreshes++
	return m.state, m.err
}
func (m *mockMonitoring) Subscribe() (<-chan dashboard.State, func()) {
	if m.updates == nil {
		m.updates = make(chan dashboard.State, 1)
	}
	return m.updates, func() { m.cancelled = true }
}

type mockHistory struct {
	resp       []models.SavedConfig
	err        error
	lastFilter service.ConfigFilter

	active    models.ActiveThresholds
	activeErr error
}

func (m *mockHistory) List(ctx context.Context, f service.ConfigFilter) ([]models.SavedConfig, error) {
	m.lastFilter = f
	return m.resp, m.err
}
func (m *mockHistory) Active(ctx context.Context) (models.ActiveThresholds, error) {
	return m.active, m.activeErr
}

type mockCatalog struct {
	storageCalls int
	presetCalls  int
}

func (m *mockCatalog) StorageTypes() []models.StorageTypePreset {
	m.storageCalls++
	return []models.StorageTypePreset{{Name: "Dairy", MinTemp: 1, MaxTemp: 4, Humidity: 75}}
}
func (m *mockCatalog) TemperaturePresets() []models.TemperaturePreset {
	m.presetCalls++
	return []models.TemperaturePreset{{Name: "Freezer", Min: -25, Max: -18}}
}

// ---- Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil, Options{}).InitRoutes()
}

func jsonHeader() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	return h
}
