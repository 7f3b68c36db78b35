package service

import (
	"context"
	"sync"
	"time"

	"cryosure/internal/client"
	"cryosure/internal/dashboard"
	"cryosure/internal/logger"
	"cryosure/internal/metrics"
)

const DefaultPollInterval = 10 * time.Second

// SensorPoller fetches readings while the monitoring view is active: once
// on activation, then every interval. Every fetch takes a new generation
// number and its result is applied only while that generation is current.
type SensorPoller struct {
	store    *dashboard.Store
	fetcher  Fetcher
	interval time.Duration
	log      *logger.Logger

	mu          sync.Mutex
	gen         uint64
	stopLoop    context.CancelFunc
	cancelFetch context.CancelFunc
	wg          sync.WaitGroup
}

func NewSensorPoller(store *dashboard.Store, fetcher Fetcher, interval time.Duration, log *logger.Logger) *SensorPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &SensorPoller{
		store:    store,
		fetcher:  fetcher,
		interval: interval,
		log:      log,
	}
}

// Activate starts the polling loop. It is a no-op while already active.
func (p *SensorPoller) Activate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopLoop != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.stopLoop = cancel
	metrics.PollerActive.Set(1)
	p.log.Infow("poller_activated", "interval", p.interval)

	p.wg.Add(1)
	go p.run(ctx)
}

// Deactivate stops the loop and discards any fetch still in flight.
func (p *SensorPoller) Deactivate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopLoop == nil {
		return
	}
	p.stopLoop()
	p.stopLoop = nil
	p.gen++
	if p.cancelFetch != nil {
		p.cancelFetch()
		p.cancelFetch = nil
	}
	metrics.PollerActive.Set(0)
	p.log.Infow("poller_deactivated")
}

// Active reports whether the loop is running.
func (p *SensorPoller) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopLoop != nil
}

// Shutdown deactivates and waits for the loop goroutine to return.
func (p *SensorPoller) Shutdown() {
	p.Deactivate()
	p.wg.Wait()
}

func (p *SensorPoller) run(ctx context.Context) {
	defer p.wg.Done()

	_, _ = p.Fetch(ctx)

	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_, _ = p.Fetch(ctx)
		}
	}
}

// Fetch runs one read and applies its outcome to the store. applied is
// false when a newer fetch or a deactivation superseded this one.
func (p *SensorPoller) Fetch(parent context.Context) (applied bool, err error) {
	p.mu.Lock()
	if err := parent.Err(); err != nil {
		p.mu.Unlock()
		return false, err
	}
	p.gen++
	gen := p.gen
	if p.cancelFetch != nil {
		p.cancelFetch()
	}
	ctx, cancel := context.WithCancel(parent)
	p.cancelFetch = cancel
	_, _ = p.store.Dispatch(dashboard.FetchStarted{})
	p.mu.Unlock()
	defer cancel()

	start := time.Now()
	batch, err := p.fetcher.FetchLatest(ctx)
	metrics.PollFetchDuration.Observe(time.Since(start).Seconds())

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		metrics.PollFetches.WithLabelValues("stale").Inc()
		p.log.Debugw("poll_result_discarded", "generation", gen, "current", p.gen)
		return false, nil
	}
	p.cancelFetch = nil

	now := time.Now()
	if err != nil {
		metrics.PollFetches.WithLabelValues("error").Inc()
		p.log.Warnw("poll_fetch_failed", "err", err)
		_, _ = p.store.Dispatch(dashboard.FetchFailed{Message: client.Describe(err), At: now})
		return true, err
	}

	metrics.PollFetches.WithLabelValues("ok").Inc()
	metrics.PollEnvelopes.WithLabelValues(batch.Kind.String()).Inc()
	st, _ := p.store.Dispatch(dashboard.FetchSucceeded{Readings: batch.Readings, At: now})
	if st.Snapshot != nil {
		metrics.CurrentTemperature.Set(st.Snapshot.CurrentTemp)
		metrics.CurrentHumidity.Set(st.Snapshot.CurrentHumidity)
		metrics.SetSnapshotStatus(string(st.Snapshot.Status))
	}
	p.log.Debugw("poll_fetch_applied", "readings", len(batch.Readings), "envelope", batch.Kind.String())
	return true, nil
}
