package service

import (
	"context"
	"sync"
	"time"

	"cryosure/internal/client"
	"cryosure/internal/models"
)

type fakeSubmitter struct {
	err   error
	calls []models.ConfigDraft
}

func (f *fakeSubmitter) Submit(ctx context.Context, d models.ConfigDraft) error {
	f.calls = append(f.calls, d)
	return f.err
}

type fakeFetcher struct {
	mu    sync.Mutex
	calls int
	fn    func(ctx context.Context, call int) (client.Batch, error)
}

func (f *fakeFetcher) FetchLatest(ctx context.Context) (client.Batch, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()
	return f.fn(ctx, n)
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeConfigRepo struct {
	appendErr error
	saved     []models.SavedConfig
	listErr   error
	lastFrom  time.Time
	lastTo    time.Time
	lastType  string
}

func (f *fakeConfigRepo) Append(ctx context.Context, c models.SavedConfig) error {
	f.saved = append(f.saved, c)
	return f.appendErr
}

func (f *fakeConfigRepo) List(ctx context.Context, from, to time.Time, storageType string) ([]models.SavedConfig, error) {
	f.lastFrom, f.lastTo, f.lastType = from, to, storageType
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.saved, nil
}

type fakeActiveRepo struct {
	loadResp models.ActiveThresholds
	loadErr  error
	saveErr  error
	saved    []models.ActiveThresholds
}

func (f *fakeActiveRepo) Save(ctx context.Context, a models.ActiveThresholds) error {
	f.saved = append(f.saved, a)
	return f.saveErr
}

func (f *fakeActiveRepo) Load(ctx context.Context) (models.ActiveThresholds, error) {
	return f.loadResp, f.loadErr
}

type fakeActivator struct{ activated int }

func (f *fakeActivator) Activate() { f.activated++ }

func batchOf(temp, humidity float64) client.Batch {
	return client.Batch{
		Kind:     client.EnvelopeDirect,
		Readings: []models.SensorReading{{Temperature: &temp, Humidity: &humidity}},
	}
}
