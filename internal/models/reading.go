package models

import "time"

// Severity is the status level derived from a temperature/humidity pair.
type Severity string

const (
	SeverityOptimal  Severity = "optimal"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// InvalidTimestamp is rendered in place of a timestamp that could not be interpreted.
const InvalidTimestamp = "Invalid timestamp"

// SensorReading is one timestamped sample from the remote sensor feed.
type SensorReading struct {
	DeviceID     string     `json:"deviceId,omitempty"`
	RawTimestamp string     `json:"timestamp"`         // as received
	Time         *time.Time `json:"time,omitempty"`    // nil if RawTimestamp was not interpretable
	DisplayTime  string     `json:"displayTime"`       // localized, or InvalidTimestamp
	Temperature  *float64   `json:"temperature"`       // °C, nil when absent
	Humidity     *float64   `json:"humidity"`          // %, nil when absent
	Status       Severity   `json:"status"`
}

// RealTimeSnapshot is the headline view derived from the most recent reading.
type RealTimeSnapshot struct {
	CurrentTemp     float64   `json:"currentTemp"`
	CurrentHumidity float64   `json:"currentHumidity"`
	Status          Severity  `json:"status"`
	LastUpdate      time.Time `json:"lastUpdate"`
}
