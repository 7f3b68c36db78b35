package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cryosure_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cryosure_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// sensor polling
	PollFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cryosure_poll_fetches_total",
		Help: "Sensor read attempts by outcome (ok, error, stale)",
	}, []string{"outcome"})

	PollFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cryosure_poll_fetch_duration_seconds",
		Help:    "Duration of sensor read requests",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	})

	PollEnvelopes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cryosure_poll_envelopes_total",
		Help: "Decoded read responses by envelope shape",
	}, []string{"kind"})

	PollerActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cryosure_poller_active",
		Help: "1 while the monitoring view is polling",
	})

	// latest snapshot
	CurrentTemperature = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cryosure_current_temperature_celsius",
		Help: "Temperature of the latest snapshot",
	})

	CurrentHumidity = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cryosure_current_humidity_percent",
		Help: "Humidity of the latest snapshot",
	})

	SnapshotStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cryosure_snapshot_status",
		Help: "1 for the severity of the latest snapshot, 0 otherwise",
	}, []string{"status"})

	// submissions
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cryosure_submissions_total",
		Help: "Configuration submissions by outcome (ok, rejected, error)",
	}, []string{"outcome"})

	// simulator
	SimulatorReadings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cryosure_simulator_readings_total",
		Help: "Readings generated by the sensor simulator",
	}, []string{"anomaly"})
)

// SetSnapshotStatus raises the gauge for status and lowers the others.
func SetSnapshotStatus(status string) {
	for _, s := range []string{"optimal", "warning", "critical"} {
		v := 0.0
		if s == status {
			v = 1
		}
		SnapshotStatus.WithLabelValues(s).Set(v)
	}
}
