// Package status maps a temperature/humidity pair to a severity level.
package status

import "cryosure/internal/models"

// Fixed display thresholds. They are independent of any configured storage profile.
const (
	criticalTempLow  = -10.0
	criticalTempHigh = 10.0
	criticalHumidity = 90.0
	warningTempLow   = -5.0
	warningTempHigh  = 5.0
	warningHumidity  = 80.0
)

// Classify returns the severity for a single temperature (°C) and humidity (%).
func Classify(temp, humidity float64) models.Severity {
	switch {
	case temp < criticalTempLow || temp > criticalTempHigh || humidity > criticalHumidity:
		return models.SeverityCritical
	case temp < warningTempLow || temp > warningTempHigh || humidity > warningHumidity:
		return models.SeverityWarning
	default:
		return models.SeverityOptimal
	}
}

// ForReading classifies a reading, treating missing values as 0.
func ForReading(r models.SensorReading) models.Severity {
	return Classify(deref(r.Temperature), deref(r.Humidity))
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
