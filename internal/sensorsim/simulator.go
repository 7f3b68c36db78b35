package sensorsim

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cryosure/internal/logger"
	"cryosure/internal/metrics"
)

// MaxStored is how many readings the read endpoint returns.
const MaxStored = 20

// Thresholds applied when none were submitted.
const (
	DefaultProfileName = "Default (No Config Set)"
	DefaultMinTemp     = 2.0
	DefaultMaxTemp     = 8.0
	DefaultMaxHumidity = 85.0
)

// Thresholds is the single active threshold record.
type Thresholds struct {
	ProfileName string  `json:"profileName"`
	MinTemp     float64 `json:"minTemp"`
	MaxTemp     float64 `json:"maxTemp"`
	MaxHumidity float64 `json:"maxHumidity"`
}

// DefaultThresholds is used until a configuration is written.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ProfileName: DefaultProfileName,
		MinTemp:     DefaultMinTemp,
		MaxTemp:     DefaultMaxTemp,
		MaxHumidity: DefaultMaxHumidity,
	}
}

// StoredReading is a sample after anomaly detection against the thresholds
// active at the time it arrived.
type StoredReading struct {
	Sample
	AppliedProfileName string   `json:"appliedProfileName"`
	IsAnomaly          bool     `json:"isAnomaly"`
	AnomalyDetails     []string `json:"anomalyDetails"`
}

// Detect checks s against t.
func Detect(s Sample, t Thresholds) StoredReading {
	out := StoredReading{Sample: s, AppliedProfileName: t.ProfileName}
	if s.Temperature < t.MinTemp || s.Temperature > t.MaxTemp {
		out.AnomalyDetails = append(out.AnomalyDetails, fmt.Sprintf(
			"Temperature %v°C is outside range (%v-%v°C).", s.Temperature, t.MinTemp, t.MaxTemp))
	}
	if s.Humidity > t.MaxHumidity {
		out.AnomalyDetails = append(out.AnomalyDetails, fmt.Sprintf(
			"Humidity %v%% is above limit (%v%%).", s.Humidity, t.MaxHumidity))
	}
	out.IsAnomaly = len(out.AnomalyDetails) > 0
	if !out.IsAnomaly {
		out.AnomalyDetails = []string{"No anomaly"}
	}
	return out
}

// Simulator stands in for the device, the anomaly detector and both remote
// endpoints the dashboard talks to.
type Simulator struct {
	gen *Generator
	log *logger.Logger

	mu         sync.RWMutex
	readings   []StoredReading // oldest first, at most MaxStored
	thresholds Thresholds
}

func New(gen *Generator, log *logger.Logger) *Simulator {
	if log == nil {
		log = logger.Nop()
	}
	return &Simulator{gen: gen, log: log, thresholds: DefaultThresholds()}
}

// Record generates one sample at now and stores it.
func (s *Simulator) Record(now time.Time) StoredReading {
	s.mu.Lock()
	sample := s.gen.Next(now)
	stored := Detect(sample, s.thresholds)
	s.readings = append(s.readings, stored)
	if len(s.readings) > MaxStored {
		s.readings = append([]StoredReading(nil), s.readings[len(s.readings)-MaxStored:]...)
	}
	s.mu.Unlock()

	metrics.SimulatorReadings.WithLabelValues(string(sample.Anomaly)).Inc()
	s.log.Debugw("sim_reading",
		"device_id", sample.DeviceID,
		"temperature", sample.Temperature,
		"humidity", sample.Humidity,
		"anomaly", sample.Anomaly,
		"flagged", stored.IsAnomaly)
	return stored
}

// Latest returns stored readings, newest first.
func (s *Simulator) Latest() []StoredReading {
	s.mu.RLock()
	out := make([]StoredReading, len(s.readings))
	copy(out, s.readings)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out
}

// SetThresholds replaces the active record.
func (s *Simulator) SetThresholds(t Thresholds) {
	s.mu.Lock()
	s.thresholds = t
	s.mu.Unlock()
	s.log.Infow("sim_thresholds_set", "profile", t.ProfileName,
		"min_temp", t.MinTemp, "max_temp", t.MaxTemp, "max_humidity", t.MaxHumidity)
}

// Thresholds returns the active record.
func (s *Simulator) Thresholds() Thresholds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.thresholds
}

// Run records one reading immediately and then one per tick until ctx is canceled.
func (s *Simulator) Run(ctx context.Context, tick time.Duration) {
	s.Record(time.Now())

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.Record(now)
		}
	}
}
