package sensorsim

import (
	"math"
	"math/rand/v2"
	"time"
)

// Ranges used by the device script. Humidity lower bound is fixed at 30%.
const (
	TempNormalMin     = 2.0
	TempNormalMax     = 8.0
	HumidityNormalMin = 30.0
	HumidityNormalMax = 85.0

	TempLowMin      = -5.0
	TempLowMax      = 1.0
	TempHighMin     = 9.0
	TempHighMax     = 15.0
	HumidityHighMin = 88.0
	HumidityHighMax = 99.0

	DefaultAnomalyProbability = 0.15
)

// Anomaly labels a generated reading.
type Anomaly string

const (
	AnomalyNone         Anomaly = "none"
	AnomalyTempHigh     Anomaly = "temp_high"
	AnomalyTempLow      Anomaly = "temp_low"
	AnomalyHumidityHigh Anomaly = "humidity_high"
)

var anomalyKinds = []Anomaly{AnomalyTempHigh, AnomalyTempLow, AnomalyHumidityHigh}

// Sample is one simulated device message.
type Sample struct {
	DeviceID    string  `json:"deviceId"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Timestamp   int64   `json:"timestamp"`
	Anomaly     Anomaly `json:"-"`
}

// Generator produces device samples. Not safe for concurrent use.
type Generator struct {
	DeviceID           string
	AnomalyProbability float64
	rng                *rand.Rand
}

// NewGenerator seeds a generator; equal seeds give equal sequences.
func NewGenerator(deviceID string, anomalyProbability float64, seed uint64) *Generator {
	return &Generator{
		DeviceID:           deviceID,
		AnomalyProbability: anomalyProbability,
		rng:                rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return round2(lo + g.rng.Float64()*(hi-lo))
}

// Next builds a sample stamped with now in whole unix seconds.
func (g *Generator) Next(now time.Time) Sample {
	s := Sample{DeviceID: g.DeviceID, Timestamp: now.Unix(), Anomaly: AnomalyNone}

	if g.rng.Float64() < g.AnomalyProbability {
		s.Anomaly = anomalyKinds[g.rng.IntN(len(anomalyKinds))]
	}

	switch s.Anomaly {
	case AnomalyTempHigh:
		s.Temperature = g.uniform(TempHighMin, TempHighMax)
		s.Humidity = g.uniform(HumidityNormalMin, HumidityNormalMax)
	case AnomalyTempLow:
		s.Temperature = g.uniform(TempLowMin, TempLowMax)
		s.Humidity = g.uniform(HumidityNormalMin, HumidityNormalMax)
	case AnomalyHumidityHigh:
		s.Temperature = g.uniform(TempNormalMin, TempNormalMax)
		s.Humidity = g.uniform(HumidityHighMin, HumidityHighMax)
	default:
		s.Temperature = g.uniform(TempNormalMin, TempNormalMax)
		s.Humidity = g.uniform(HumidityNormalMin, HumidityNormalMax)
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
