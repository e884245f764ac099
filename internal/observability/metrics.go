package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Splice outcomes used as the "outcome" label.
const (
	OutcomeSpliced        = "spliced"
	OutcomeUnchanged      = "unchanged"
	OutcomeDryRun         = "dry_run"
	OutcomeMarkerNotFound = "marker_not_found"
	OutcomeMarkerOrder    = "marker_order"
	OutcomeFailed         = "failed"
)

var (
	registerOnce sync.Once

	// Registry holds only splicectl collectors so textfile exports stay small.
	Registry = prometheus.NewRegistry()

	spliceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "splicectl",
			Subsystem: "splice",
			Name:      "total",
			Help:      "Splice runs by outcome.",
		},
		[]string{"outcome"},
	)
	spliceBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "splicectl",
			Subsystem: "splice",
			Name:      "bytes_total",
			Help:      "Section bytes removed and inserted.",
		},
		[]string{"direction"},
	)
	spliceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "splicectl",
			Subsystem: "splice",
			Name:      "duration_seconds",
			Help:      "Read-modify-write duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		Registry.MustRegister(spliceTotal, spliceBytes, spliceDuration)
	})
}

// RecordSplice records one run. removed and inserted are section lengths in
// bytes and are only counted for runs that produced output.
func RecordSplice(outcome string, removed, inserted int, duration time.Duration) {
	RegisterMetrics()
	spliceTotal.WithLabelValues(outcome).Inc()
	spliceDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	if removed > 0 {
		spliceBytes.WithLabelValues("removed").Add(float64(removed))
	}
	if inserted > 0 {
		spliceBytes.WithLabelValues("inserted").Add(float64(inserted))
	}
}

// WriteTextfile exports the registry in node_exporter textfile format.
func WriteTextfile(path string) error {
	RegisterMetrics()
	return prometheus.WriteToTextfile(path, Registry)
}
