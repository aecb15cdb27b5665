package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every vfacts collector together with the process and Go
// runtime collectors. It is served on /metrics.
var Registry = prometheus.NewRegistry()

var (
	// SnapshotsDecoded counts payloads turned into snapshots.
	SnapshotsDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vfacts_snapshots_decoded_total",
			Help: "Total number of snapshots decoded, by category.",
		},
		[]string{"category"},
	)

	// SnapshotsRejected counts payloads that could not be decoded at all.
	SnapshotsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vfacts_snapshots_rejected_total",
			Help: "Total number of payloads rejected, by category and reason.",
		},
		[]string{"category", "reason"}, // reason: not_object/invalid_json/unknown_category
	)

	UnrecognizedValues = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vfacts_unrecognized_values_total",
			Help: "Enumerated fields whose value matched no known tag.",
		},
		[]string{"category", "field"},
	)

	MalformedOptionTokens = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vfacts_malformed_option_tokens_total",
			Help: "Option-code tokens skipped because they were malformed.",
		},
	)

	ArchiveWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vfacts_archive_writes_total",
			Help: "Raw payload archive writes, by status.",
		},
		[]string{"status"}, // status: success/failed
	)

	// VehiclePresence is the number of known vehicles in each presence state.
	VehiclePresence = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vfacts_vehicle_presence",
			Help: "Number of vehicles per presence state.",
		},
		[]string{"state"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		SnapshotsDecoded,
		SnapshotsRejected,
		UnrecognizedValues,
		MalformedOptionTokens,
		ArchiveWrites,
		VehiclePresence,
	)
}

// Handler serves Registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
